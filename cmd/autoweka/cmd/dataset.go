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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	logger "d7y.io/autoweka/internal/awlog"
	"d7y.io/autoweka/pkg/arff"
)

var datasetCmd = &cobra.Command{
	Use:               "dataset <command> [flags]",
	Short:             "manage experiment datasets",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

var datasetConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "convert a CSV file into an ARFF file",
	Long: `convert reads a CSV file whose last column is the class label and whose
other columns are numeric, and writes it as an ARFF file Auto-WEKA can read.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		csvFile, err := flags.GetString("csv")
		if err != nil {
			return err
		}

		out, err := flags.GetString("out")
		if err != nil {
			return err
		}

		name, err := flags.GetString("name")
		if err != nil {
			return err
		}

		hasHeaders, err := flags.GetBool("headers")
		if err != nil {
			return err
		}

		if _, err := initRuntime(); err != nil {
			return err
		}

		d, err := arff.ReadCSV(csvFile, hasHeaders)
		if err != nil {
			return fmt.Errorf("read %s: %w", csvFile, err)
		}

		if name != "" {
			d.Relation = name
		}

		if err := arff.WriteFile(out, d); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		logger.Infof("converted %s into %s, %d examples of classes %s", csvFile, out, len(d.Labels), strings.Join(d.ClassValues(), ", "))
		fmt.Fprintf(cmd.OutOrStdout(), "%d examples written to %s\n", len(d.Labels), out)
		return nil
	},
}

func init() {
	flags := datasetConvertCmd.Flags()
	flags.String("csv", "", "CSV file to convert")
	flags.String("out", "", "ARFF file to write")
	flags.String("name", "", "relation name, default is the CSV file name")
	flags.Bool("headers", true, "whether the first CSV line holds the column names")
	for _, name := range []string{"csv", "out"} {
		if err := datasetConvertCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	datasetCmd.AddCommand(datasetConvertCmd)
}
