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

package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/docker/go-units"
	"golang.org/x/exp/slices"

	"d7y.io/autoweka/cmd/dependency/base"
	"d7y.io/autoweka/experiment"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// AutoWeka configuration.
	AutoWeka AutoWekaConfig `yaml:"autoweka" mapstructure:"autoweka"`

	// Workspace configuration.
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`

	// Experiment configuration.
	Experiment ExperimentConfig `yaml:"experiment" mapstructure:"experiment"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type AutoWekaConfig struct {
	// Java binary.
	Java string `yaml:"java" mapstructure:"java"`

	// Jar is the Auto-WEKA jar, used as classpath.
	Jar string `yaml:"jar" mapstructure:"jar"`

	// ParamsDir holds the classifier parameter files, defaults to params next to the jar.
	ParamsDir string `yaml:"paramsDir" mapstructure:"paramsDir"`

	// SMACExecutable is the SMAC launcher script.
	SMACExecutable string `yaml:"smacExecutable" mapstructure:"smacExecutable"`

	// HideOutput discards the output of Auto-WEKA processes.
	HideOutput bool `yaml:"hideOutput" mapstructure:"hideOutput"`
}

type WorkspaceConfig struct {
	// WorkHome is the root of the workspace, defaults to the current directory.
	WorkHome string `yaml:"workHome" mapstructure:"workHome"`

	// ExperimentDir is the experiment base folder, defaults to experiments under the work home.
	ExperimentDir string `yaml:"experimentDir" mapstructure:"experimentDir"`

	// ConfigDir is where experiment documents are written.
	ConfigDir string `yaml:"configDir" mapstructure:"configDir"`

	// DataDir is where datasets are written.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`
}

type ExperimentConfig struct {
	// Name of the experiment.
	Name string `yaml:"name" mapstructure:"name"`

	// ResultMetric is the metric to optimize.
	ResultMetric string `yaml:"resultMetric" mapstructure:"resultMetric"`

	// OptimizationMethod is SMAC or TPE.
	OptimizationMethod string `yaml:"optimizationMethod" mapstructure:"optimizationMethod"`

	// InstanceGenerator configuration.
	InstanceGenerator InstanceGeneratorConfig `yaml:"instanceGenerator" mapstructure:"instanceGenerator"`

	// TunerTimeout is the number of seconds to run the optimizer.
	TunerTimeout int `yaml:"tunerTimeout" mapstructure:"tunerTimeout"`

	// TrainTimeout is the number of seconds to train a configuration on a fold.
	TrainTimeout int `yaml:"trainTimeout" mapstructure:"trainTimeout"`

	// AttributeSelection enables attribute selection.
	AttributeSelection bool `yaml:"attributeSelection" mapstructure:"attributeSelection"`

	// AttributeSelectionTimeout is the attribute selection budget in seconds.
	AttributeSelectionTimeout int `yaml:"attributeSelectionTimeout" mapstructure:"attributeSelectionTimeout"`

	// Memory limit of the java processes, like 3000m.
	Memory string `yaml:"memory" mapstructure:"memory"`

	// Classifiers restricts the search, empty means all.
	Classifiers []string `yaml:"classifiers" mapstructure:"classifiers"`

	// Dataset configuration.
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`

	// Seeds to run.
	Seeds []int `yaml:"seeds" mapstructure:"seeds"`

	// Predictions is the output file of predict.
	Predictions string `yaml:"predictions" mapstructure:"predictions"`
}

type InstanceGeneratorConfig struct {
	// Type is default, crossValidation or randomSubSampling.
	Type string `yaml:"type" mapstructure:"type"`

	// Seed of cross validation.
	Seed int `yaml:"seed" mapstructure:"seed"`

	// NumFolds of cross validation.
	NumFolds int `yaml:"numFolds" mapstructure:"numFolds"`

	// StartingSeed of random sub sampling.
	StartingSeed int `yaml:"startingSeed" mapstructure:"startingSeed"`

	// NumSamples of random sub sampling.
	NumSamples int `yaml:"numSamples" mapstructure:"numSamples"`

	// Percent of the training data per sample.
	Percent int `yaml:"percent" mapstructure:"percent"`

	// Bias towards a uniform class distribution, zero is unset.
	Bias float64 `yaml:"bias" mapstructure:"bias"`
}

type DatasetConfig struct {
	// Train is the training ARFF file.
	Train string `yaml:"train" mapstructure:"train"`

	// Test is the optional test ARFF file.
	Test string `yaml:"test" mapstructure:"test"`

	// Name of the dataset, defaults to the base name of the training file.
	Name string `yaml:"name" mapstructure:"name"`
}

type MetricsConfig struct {
	// Enable writes metrics after every command.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Textfile is the prometheus text file metrics are written to.
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Options: base.Options{
			LogMaxSize:    DefaultLogRotateMaxSize,
			LogMaxAge:     DefaultLogRotateMaxAge,
			LogMaxBackups: DefaultLogRotateMaxBackups,
		},
		AutoWeka: AutoWekaConfig{
			Java:       DefaultJava,
			Jar:        DefaultJar,
			HideOutput: false,
		},
		Workspace: WorkspaceConfig{},
		Experiment: ExperimentConfig{
			Name:               experiment.DefaultName,
			ResultMetric:       string(experiment.DefaultResultMetric),
			OptimizationMethod: string(experiment.DefaultOptimizationMethod),
			InstanceGenerator: InstanceGeneratorConfig{
				Type:       InstanceGeneratorTypeDefault,
				NumFolds:   DefaultCrossValidationNumFolds,
				NumSamples: DefaultRandomSubSamplingNumSamples,
				Percent:    DefaultRandomSubSamplingPercent,
			},
			TunerTimeout:              experiment.DefaultTunerTimeout,
			TrainTimeout:              experiment.DefaultTrainTimeout,
			AttributeSelection:        experiment.DefaultAttributeSelection,
			AttributeSelectionTimeout: experiment.DefaultAttributeSelectionTimeout,
			Memory:                    experiment.DefaultMemory,
			Seeds:                     append([]int(nil), experiment.DefaultSeeds...),
			Predictions:               experiment.DefaultPredictionsFile,
		},
		Metrics: MetricsConfig{
			Enable:   false,
			Textfile: DefaultMetricsTextfile,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.LogMaxSize <= 0 {
		return errors.New("log requires parameter logMaxSize")
	}

	if cfg.AutoWeka.Java == "" {
		return errors.New("autoweka requires parameter java")
	}

	if cfg.AutoWeka.Jar == "" {
		return errors.New("autoweka requires parameter jar")
	}

	if cfg.Experiment.Name == "" {
		return errors.New("experiment requires parameter name")
	}

	if !experiment.ResultMetric(cfg.Experiment.ResultMetric).IsValid() {
		return errors.New("experiment requires parameter resultMetric")
	}

	if !experiment.OptimizationMethod(cfg.Experiment.OptimizationMethod).IsValid() {
		return errors.New("experiment requires parameter optimizationMethod")
	}

	if !slices.Contains(InstanceGeneratorTypes, cfg.Experiment.InstanceGenerator.Type) {
		return errors.New("instanceGenerator requires parameter type")
	}

	if cfg.Experiment.TunerTimeout <= 0 {
		return errors.New("experiment requires parameter tunerTimeout")
	}

	if cfg.Experiment.TrainTimeout <= 0 {
		return errors.New("experiment requires parameter trainTimeout")
	}

	if cfg.Experiment.AttributeSelection && cfg.Experiment.AttributeSelectionTimeout <= 0 {
		return errors.New("experiment requires parameter attributeSelectionTimeout")
	}

	if _, err := units.RAMInBytes(cfg.Experiment.Memory); err != nil {
		return errors.New("experiment requires parameter memory")
	}

	for _, seed := range cfg.Experiment.Seeds {
		if seed < 0 {
			return errors.New("experiment requires parameter seeds")
		}
	}

	if cfg.Experiment.Dataset.Test != "" && cfg.Experiment.Dataset.Train == "" {
		return errors.New("dataset requires parameter train")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.Textfile == "" {
			return errors.New("metrics requires parameter textfile")
		}
	}

	return nil
}

// Convert makes file paths absolute and fills derived defaults.
func (cfg *Config) Convert() error {
	if cfg.AutoWeka.ParamsDir == "" && cfg.AutoWeka.Jar != "" {
		cfg.AutoWeka.ParamsDir = filepath.Join(filepath.Dir(cfg.AutoWeka.Jar), DefaultParamsDirName)
	}

	for _, path := range []*string{
		&cfg.LogDir,
		&cfg.AutoWeka.Jar,
		&cfg.AutoWeka.ParamsDir,
		&cfg.AutoWeka.SMACExecutable,
		&cfg.Workspace.WorkHome,
		&cfg.Workspace.ExperimentDir,
		&cfg.Workspace.ConfigDir,
		&cfg.Workspace.DataDir,
		&cfg.Experiment.Dataset.Train,
		&cfg.Experiment.Dataset.Test,
	} {
		if *path == "" {
			continue
		}

		abs, err := filepath.Abs(*path)
		if err != nil {
			return fmt.Errorf("convert %s: %w", *path, err)
		}
		*path = abs
	}

	return nil
}

// InstanceGenerator builds the configured instance generator.
func (cfg *InstanceGeneratorConfig) InstanceGenerator() (experiment.InstanceGenerator, error) {
	switch cfg.Type {
	case InstanceGeneratorTypeCrossValidation:
		return experiment.NewCrossValidation(cfg.Seed, cfg.NumFolds)
	case InstanceGeneratorTypeRandomSubSampling:
		return experiment.NewRandomSubSampling(cfg.StartingSeed, cfg.NumSamples, cfg.Percent, experiment.WithBias(cfg.Bias))
	case InstanceGeneratorTypeDefault, "":
		return experiment.DefaultInstanceGenerator(), nil
	}

	return nil, fmt.Errorf("unknown instance generator type %s", cfg.Type)
}

// Options converts the experiment configuration into experiment options.
func (cfg *ExperimentConfig) Options() ([]experiment.Option, error) {
	generator, err := cfg.InstanceGenerator.InstanceGenerator()
	if err != nil {
		return nil, err
	}

	options := []experiment.Option{
		experiment.WithResultMetric(experiment.ResultMetric(cfg.ResultMetric)),
		experiment.WithOptimizationMethod(experiment.OptimizationMethod(cfg.OptimizationMethod)),
		experiment.WithInstanceGenerator(generator),
		experiment.WithTunerTimeout(cfg.TunerTimeout),
		experiment.WithTrainTimeout(cfg.TrainTimeout),
		experiment.WithAttributeSelection(cfg.AttributeSelection),
		experiment.WithMemory(cfg.Memory),
	}

	// The timeout is only read when attribute selection is enabled.
	if cfg.AttributeSelectionTimeout > 0 {
		options = append(options, experiment.WithAttributeSelectionTimeout(cfg.AttributeSelectionTimeout))
	}

	return options, nil
}
