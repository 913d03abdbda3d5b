package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [set]",
	Short: "Reset progress for one set, or for every set with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		switch {
		case all && len(args) > 0:
			return fmt.Errorf("use a set ID or --all, not both")
		case !all && len(args) == 0:
			return fmt.Errorf("specify a set ID or --all")
		}

		ctx := cmd.Context()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if all {
			e.sched.ResetAllProgress(ctx)
			fmt.Println("Reset progress for all sets.")
			return nil
		}

		set, err := e.lib.Resolve(args[0])
		if err != nil {
			return err
		}
		e.sched.ResetSetProgress(ctx, set.ID)
		fmt.Printf("Reset progress for %s.\n", set.ID)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Reset progress for every set")
}
