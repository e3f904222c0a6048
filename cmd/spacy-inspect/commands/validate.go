package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lfaller/inspect-spacy-model/internal/registry"
	"github.com/lfaller/inspect-spacy-model/internal/store"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check installed bundles against the registry",
		Long:  "Compare installed model bundles with the bundle registry and report version drift and bundles the registry does not know about.",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(cfg.Model.Dir)
	if err != nil {
		return err
	}

	models, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(models) == 0 {
		fmt.Fprintln(out, "No models found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tINSTALLED\tREGISTRY\tSTATUS")
	fmt.Fprintln(w, "----\t---------\t--------\t------")

	for _, m := range models {
		known, err := registry.GetModelByName(m.Name)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t-\tnot in registry\n", m.Name, m.Version)
			continue
		}

		var status string
		switch {
		case m.Version == known.Version:
			status = "ok"
		case store.CompareVersions(m.Version, known.Version) < 0:
			status = fmt.Sprintf("update available (%s)", known.Version)
		default:
			status = "newer than registry"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Name, m.Version, known.Version, status)
	}

	w.Flush()
	return nil
}
