package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lfaller/inspect-spacy-model/internal/registry"
	"github.com/lfaller/inspect-spacy-model/internal/store"
)

func runList(cmd *cobra.Command, lang string) error {
	st, err := store.NewStore(cfg.Model.Dir)
	if err != nil {
		return err
	}

	models, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	installed := make(map[string]bool, len(models))
	for _, m := range models {
		installed[m.Name] = true
	}

	if len(models) == 0 {
		fmt.Fprintln(out, "No models found.")
		fmt.Fprintf(out, "Run: spacy-inspect download %s\n", cfg.Model.Default)
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tLANG\tPIPELINE\tSIZE")
		fmt.Fprintln(w, "----\t-------\t----\t--------\t----")

		for _, m := range models {
			size := "?"
			if n, err := store.DirSize(m.Path); err == nil {
				size = humanize.IBytes(uint64(n))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				m.Name, m.Version, m.Lang, strings.Join(m.Pipeline, ","), size)
		}

		w.Flush()
	}

	available := registry.SortBySize(registry.ListAll())
	if lang != "" {
		available = registry.FilterByLang(available, lang)
	}

	var missing []registry.ModelInfo
	for _, m := range available {
		if !installed[m.Name] {
			missing = append(missing, m)
		}
	}

	if len(missing) > 0 {
		fmt.Fprintln(out, "\nAvailable for download:")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tLANG\tSIZE\tRECOMMENDED")
		fmt.Fprintln(w, "----\t-------\t----\t----\t-----------")

		for _, m := range missing {
			recommended := ""
			if m.Recommended {
				recommended = "✓"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d MB\t%s\n",
				m.Name, m.Version, m.Lang, m.FileSizeMB, recommended)
		}

		w.Flush()
	}

	fmt.Fprintf(out, "\nModels directory: %s\n", st.Root)
	return nil
}
