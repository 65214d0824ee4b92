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
	"fmt"
	"os"

	"github.com/docker/go-units"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"d7y.io/autoweka/cmd/dependency"
	"d7y.io/autoweka/experiment"
	"d7y.io/autoweka/experiment/classifier"
	"d7y.io/autoweka/experiment/config"
	"d7y.io/autoweka/experiment/metrics"
	"d7y.io/autoweka/experiment/storage"
	logger "d7y.io/autoweka/internal/awlog"
	"d7y.io/autoweka/pkg/autoweka"
	"d7y.io/autoweka/pkg/awpath"
	"d7y.io/autoweka/pkg/java"
	"d7y.io/autoweka/pkg/types"
	"d7y.io/autoweka/version"
)

var (
	cfg *config.Config
)

var autowekaDescription = `
autoweka drives Auto-WEKA experiments from the command line. It writes the
experiment document, builds the experiment folder, runs the hyperparameter
search once per seed, merges the trajectories and predicts new data with the
model of the best seed. Auto-WEKA itself is invoked as a java process.
`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:               "autoweka <command> [flags]",
	Short:             "the command line driver of Auto-WEKA experiments",
	Long:              autowekaDescription,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default autoweka config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)

	// Bind more experiment specific persistent flags.
	flags := rootCmd.PersistentFlags()
	flags.String("java", cfg.AutoWeka.Java, "java binary used to run Auto-WEKA")
	flags.String("jar", cfg.AutoWeka.Jar, "path of the Auto-WEKA jar")
	flags.String("name", cfg.Experiment.Name, "experiment name")
	flags.String("workhome", cfg.Workspace.WorkHome, "working directory of experiments, default is the current directory")
	flags.String("logdir", cfg.LogDir, "log directory, default is logs under the working directory")

	for key, flag := range map[string]string{
		"autoweka.java":      "java",
		"autoweka.jar":       "jar",
		"experiment.name":    "name",
		"workspace.workHome": "workhome",
		"logDir":             "logdir",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Errorf("bind flag %s to viper: %w", flag, err))
		}
	}

	rootCmd.AddCommand(prepareCmd, runCmd, bestSeedCmd, predictCmd, classifiersCmd, datasetCmd)
}

// initRuntime converts and validates the config, then initializes
// the workspace and the loggers.
func initRuntime() (awpath.Awpath, error) {
	// Convert config.
	if err := cfg.Convert(); err != nil {
		return nil, err
	}

	// Validate config.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Initialize awpath.
	d, err := initAwpath(cfg)
	if err != nil {
		return nil, err
	}

	rotateConfig := logger.LogRotateConfig{
		MaxSize:    cfg.LogMaxSize,
		MaxAge:     cfg.LogMaxAge,
		MaxBackups: cfg.LogMaxBackups,
	}

	// Initialize logger.
	if err := logger.Init(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
		return nil, fmt.Errorf("init %s logger: %w", types.AutoWekaName, err)
	}
	logger.Infof("version:\n%s", version.Version())
	checkMemory(cfg.Experiment.Memory)

	return d, nil
}

// checkMemory warns when the java processes may claim more than the host memory.
func checkMemory(memory string) {
	limit, err := units.RAMInBytes(memory)
	if err != nil {
		return
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		logger.Warnf("read host memory failed: %s", err.Error())
		return
	}

	if uint64(limit) > vm.Total {
		logger.Warnf("experiment memory %s exceeds host memory %s", memory, units.BytesSize(float64(vm.Total)))
	}
}

func initAwpath(cfg *config.Config) (awpath.Awpath, error) {
	var options []awpath.Option
	if cfg.Workspace.WorkHome != "" {
		options = append(options, awpath.WithWorkHome(cfg.Workspace.WorkHome))
	}

	if cfg.Workspace.ExperimentDir != "" {
		options = append(options, awpath.WithExperimentDir(cfg.Workspace.ExperimentDir))
	}

	if cfg.Workspace.ConfigDir != "" {
		options = append(options, awpath.WithConfigDir(cfg.Workspace.ConfigDir))
	}

	if cfg.Workspace.DataDir != "" {
		options = append(options, awpath.WithDataDir(cfg.Workspace.DataDir))
	}

	if cfg.LogDir != "" {
		options = append(options, awpath.WithLogDir(cfg.LogDir))
	}

	return awpath.New(options...)
}

func newRegistry() (*classifier.Registry, error) {
	return classifier.New(cfg.AutoWeka.ParamsDir)
}

// newExperiment builds the configured experiment, its classifiers and dataset.
func newExperiment(d awpath.Awpath, options ...experiment.Option) (*experiment.Experiment, error) {
	registry, err := newRegistry()
	if err != nil {
		return nil, err
	}

	runner := java.New(cfg.AutoWeka.Jar,
		java.WithBinary(cfg.AutoWeka.Java),
		java.WithHideOutput(cfg.AutoWeka.HideOutput),
	)

	env := &experiment.Env{
		Client:         autoweka.New(runner),
		Storage:        storage.New(d.ExperimentDir()),
		Classifiers:    registry,
		BaseFolder:     d.ExperimentDir(),
		ConfigDir:      d.ConfigDir(),
		DataDir:        d.DataDir(),
		SMACExecutable: cfg.AutoWeka.SMACExecutable,
	}

	experimentOptions, err := cfg.Experiment.Options()
	if err != nil {
		return nil, err
	}

	e, err := experiment.New(cfg.Experiment.Name, env, append(experimentOptions, options...)...)
	if err != nil {
		return nil, err
	}

	for _, id := range cfg.Experiment.Classifiers {
		if err := e.AddClassifier(id); err != nil {
			return nil, err
		}
	}

	if cfg.Experiment.Dataset.Train != "" {
		if err := e.SetDatasetFiles(cfg.Experiment.Dataset.Train, cfg.Experiment.Dataset.Test, cfg.Experiment.Dataset.Name); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// runExperimentCmd initializes the runtime and the experiment, then runs fn
// with a context canceled on quit signals.
func runExperimentCmd(fn func(ctx context.Context, e *experiment.Experiment) error, options ...experiment.Option) error {
	d, err := initRuntime()
	if err != nil {
		return err
	}
	defer writeMetrics()

	e, err := newExperiment(d, options...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dependency.SetupQuitSignalHandler(cancel)

	return fn(ctx, e)
}

func writeMetrics() {
	if !cfg.Metrics.Enable {
		return
	}

	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warnf("write metrics to %s failed: %s", cfg.Metrics.Textfile, err.Error())
	}
}
