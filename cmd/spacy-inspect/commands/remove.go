package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfaller/inspect-spacy-model/internal/store"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [model]",
		Short: "Remove an installed model bundle",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
	cmd.ValidArgsFunction = validModelNames
	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	st, err := store.NewStore(cfg.Model.Dir)
	if err != nil {
		return err
	}

	if err := st.Remove(name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed model: %s\n", name)
	return nil
}
