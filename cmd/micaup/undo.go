package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"micaup/internal/history"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the files of the most recent upgrade run",
	Long: `undo rewrites the units of the latest recorded run back to their
pre-upgrade text. Files that were edited since the run are refused unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	undoCmd.Flags().Bool("force", false, "restore even if files changed since the run")
	undoCmd.Flags().Bool("list", false, "list recorded runs instead of restoring")
}

func runUndo(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	journal, err := history.Open("micaup")
	if err != nil {
		return err
	}

	if list {
		entries, err := journal.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d unit(s)\n",
				e.ID, e.When.Format("2006-01-02 15:04:05"), len(e.Units))
		}
		return nil
	}

	entry, ok, err := journal.Latest()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("nothing to undo")
	}

	restored, err := history.Restore(entry, force)
	if err != nil {
		return err
	}
	for _, path := range restored {
		fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", path)
	}
	return journal.Drop(entry.ID)
}
