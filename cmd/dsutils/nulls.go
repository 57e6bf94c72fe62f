package main

import (
	"github.com/alekLukanen/dsutils/arrowOps"
	"github.com/alekLukanen/dsutils/operations"
	"github.com/spf13/cobra"
)

func newNullsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "nulls <source>",
		Short: "Print the number of missing values of every column as csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			preparer, err := operations.BuildPreparer(ctx, logger, cfg)
			if err != nil {
				return logError(logger, "unable to build preparer", err)
			}
			defer preparer.Close()

			summary, err := preparer.NullCounter(ctx, args[0])
			if err != nil {
				return logError(logger, "unable to count nulls", err)
			}
			defer summary.Release()

			return arrowops.WriteRecordToCSV(summary, cmd.OutOrStdout(), arrowops.CSVOptions{})
		},
	}
}
