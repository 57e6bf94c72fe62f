package main

import (
	"fmt"

	"github.com/alekLukanen/dsutils/elements"
	"github.com/alekLukanen/dsutils/operations"
	"github.com/spf13/cobra"
)

type splitOptions struct {
	ratio     float64
	seed      int64
	saveTo    bool
	outputDir string
	format    string
	trainName string
	testName  string
}

func newSplitCmd(root *rootOptions) *cobra.Command {
	opts := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split <source>",
		Short: "Split a dataset into training and testing sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("ratio") {
				cfg.Split.Ratio = opts.ratio
			}
			if flags.Changed("seed") {
				cfg.Split.Seed = opts.seed
			}
			if flags.Changed("save-to") {
				cfg.Split.SaveTo = opts.saveTo
			}
			if flags.Changed("output-dir") {
				cfg.Split.OutputDir = opts.outputDir
			}
			if flags.Changed("format") {
				cfg.Split.Format = opts.format
			}
			if flags.Changed("train-name") {
				cfg.Split.TrainName = opts.trainName
			}
			if flags.Changed("test-name") {
				cfg.Split.TestName = opts.testName
			}

			ctx := cmd.Context()

			preparer, err := operations.BuildPreparer(ctx, logger, cfg)
			if err != nil {
				return logError(logger, "unable to build preparer", err)
			}
			defer preparer.Close()

			splitOpts := elements.NewSplitOptions().
				WithRatio(cfg.Split.Ratio).
				WithSeed(cfg.Split.Seed).
				WithSaveTo(cfg.Split.SaveTo)

			result, err := preparer.TrainTestSplit(ctx, args[0], splitOpts)
			if err != nil {
				return logError(logger, "unable to split data", err)
			}
			defer result.Release()

			out := cmd.OutOrStdout()
			if result.Saved() {
				fmt.Fprintf(out, "train\t%d\t%s\n", result.TrainRows, result.Locations.Train)
				fmt.Fprintf(out, "test\t%d\t%s\n", result.TestRows, result.Locations.Test)
			} else {
				fmt.Fprintf(out, "train\t%d\n", result.TrainRows)
				fmt.Fprintf(out, "test\t%d\n", result.TestRows)
			}
			return nil
		},
	}

	defaults := elements.NewSplitOptions()
	cmd.Flags().Float64Var(&opts.ratio, "ratio", defaults.Ratio, "fraction of rows expected in the training set, within (0, 1)")
	cmd.Flags().Int64Var(&opts.seed, "seed", defaults.Seed, "random seed within [0, 4294967295]")
	cmd.Flags().BoolVar(&opts.saveTo, "save-to", defaults.SaveTo, "write the training and testing sets to the output directory")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", ".", "local directory or s3://bucket/prefix for the outputs")
	cmd.Flags().StringVar(&opts.format, "format", "csv", "output format: csv, parquet or avro")
	cmd.Flags().StringVar(&opts.trainName, "train-name", "training", "file name of the training set without extension")
	cmd.Flags().StringVar(&opts.testName, "test-name", "testing", "file name of the testing set without extension")

	return cmd
}
