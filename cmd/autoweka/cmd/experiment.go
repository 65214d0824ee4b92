/*
 *     Copyright 2024 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"d7y.io/autoweka/experiment"
)

var prepareCmd = &cobra.Command{
	Use:               "prepare",
	Short:             "write the experiment document and build the experiment folder",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExperimentCmd(func(ctx context.Context, e *experiment.Experiment) error {
			if err := e.Prepare(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "experiment %s prepared, document %s\n", e.Name(), e.FileName())
			return nil
		})
	},
}

var runCmd = &cobra.Command{
	Use:               "run",
	Short:             "run the experiment once per seed and merge the trajectories",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		seeds := cfg.Experiment.Seeds
		if len(seeds) == 0 {
			seeds = experiment.DefaultSeeds
		}

		var pb *progressbar.ProgressBar
		hook := experiment.WithRunHook(func(result experiment.RunResult) {
			if pb == nil {
				return
			}

			if result.Err != nil {
				pb.Describe(fmt.Sprintf("seed %d failed", result.Seed))
			} else {
				pb.Describe(fmt.Sprintf("seed %d done in %s", result.Seed, result.Cost.Round(time.Second)))
			}
			_ = pb.Add(1)
		})

		return runExperimentCmd(func(ctx context.Context, e *experiment.Experiment) error {
			if !viper.GetBool("console") {
				pb = progressbar.Default(int64(len(seeds)*len(e.Datasets())), "Running seeds")
				defer pb.Finish()
			}

			report, err := e.Run(ctx, seeds...)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}

			var seedRunError *experiment.SeedRunError
			if errors.As(err, &seedRunError) && len(report.Merged) > 0 {
				// Partial failures still produce merged trajectories.
				fmt.Fprintf(cmd.ErrOrStderr(), "%d seeds failed, %d succeeded\n", len(seedRunError.Failed), len(report.Succeeded()))
			}

			return err
		}, hook)
	},
}

var bestSeedCmd = &cobra.Command{
	Use:               "best-seed",
	Short:             "print the best seed of the configured dataset",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExperimentCmd(func(ctx context.Context, e *experiment.Experiment) error {
			datasets := e.Datasets()
			if len(datasets) == 0 {
				return errors.New("experiment requires parameter dataset")
			}

			seed, err := e.BestSeed(ctx, datasets[0].Name)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), seed)
			return nil
		})
	},
}

var predictCmd = &cobra.Command{
	Use:               "predict",
	Short:             "predict a data file with the model of the best seed",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataFile, err := cmd.Flags().GetString("data")
		if err != nil {
			return err
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		if output == "" {
			output = cfg.Experiment.Predictions
		}

		return runExperimentCmd(func(ctx context.Context, e *experiment.Experiment) error {
			if err := e.PredictFromFile(ctx, dataFile, output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "predictions written to %s\n", output)
			return nil
		})
	},
}

var classifiersCmd = &cobra.Command{
	Use:               "classifiers",
	Short:             "list the classifiers found in the params directory",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := initRuntime(); err != nil {
			return err
		}

		registry, err := newRegistry()
		if err != nil {
			return err
		}

		if registry.Len() == 0 {
			return fmt.Errorf("no classifier found in %s", registry.Dir())
		}

		for _, id := range registry.IDs() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}

		return nil
	},
}

func init() {
	runCmd.Flags().IntSlice("seeds", experiment.DefaultSeeds, "seeds to run, like 0,1,2")
	if err := viper.BindPFlag("experiment.seeds", runCmd.Flags().Lookup("seeds")); err != nil {
		panic(fmt.Errorf("bind flag seeds to viper: %w", err))
	}

	flags := predictCmd.Flags()
	flags.String("data", "", "ARFF file to predict")
	flags.String("output", "", "CSV file predictions are written to, default is the configured predictions file")
	if err := predictCmd.MarkFlagRequired("data"); err != nil {
		panic(err)
	}
}

func printReport(w io.Writer, report *experiment.RunReport) {
	fmt.Fprintf(w, "run %s\n", report.ID)
	for _, result := range report.Results {
		state := "succeeded"
		if result.Err != nil {
			state = "failed: " + result.Err.Error()
		}

		fmt.Fprintf(w, "  dataset %s seed %d %s (%s)\n", result.Dataset, result.Seed, state, result.Cost.Round(time.Second))
	}

	if len(report.Results) > 0 {
		costs := make(stats.Float64Data, 0, len(report.Results))
		for _, result := range report.Results {
			costs = append(costs, result.Cost.Seconds())
		}

		mean, _ := costs.Mean()   // nolint: errcheck
		longest, _ := costs.Max() // nolint: errcheck
		fmt.Fprintf(w, "  seed cost mean %s max %s\n", seconds(mean), seconds(longest))
	}

	for _, dataset := range report.Merged {
		fmt.Fprintf(w, "  dataset %s trajectories merged\n", dataset)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Millisecond)
}
