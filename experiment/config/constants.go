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

const (
	// DefaultJava is default java binary.
	DefaultJava = "java"

	// DefaultJar is default path of the Auto-WEKA jar.
	DefaultJar = "autoweka.jar"

	// DefaultParamsDirName is the params directory next to the Auto-WEKA jar.
	DefaultParamsDirName = "params"
)

const (
	// DefaultLogRotateMaxSize is default maximum size in megabytes of log files.
	DefaultLogRotateMaxSize = 1024

	// DefaultLogRotateMaxAge is default maximum number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is default maximum number of old log files to keep.
	DefaultLogRotateMaxBackups = 20
)

const (
	// InstanceGeneratorTypeDefault uses the Auto-WEKA default generator.
	InstanceGeneratorTypeDefault = "default"

	// InstanceGeneratorTypeCrossValidation uses k-fold cross validation.
	InstanceGeneratorTypeCrossValidation = "crossValidation"

	// InstanceGeneratorTypeRandomSubSampling uses random sub sampling.
	InstanceGeneratorTypeRandomSubSampling = "randomSubSampling"
)

const (
	// DefaultCrossValidationNumFolds is default number of folds.
	DefaultCrossValidationNumFolds = 10

	// DefaultRandomSubSamplingNumSamples is default number of samples.
	DefaultRandomSubSamplingNumSamples = 10

	// DefaultRandomSubSamplingPercent is default percentage of the training data per sample.
	DefaultRandomSubSamplingPercent = 70
)

const (
	// DefaultMetricsTextfile is default path of the metrics textfile.
	DefaultMetricsTextfile = "autoweka.prom"
)

// InstanceGeneratorTypes lists every instance generator type.
var InstanceGeneratorTypes = []string{
	InstanceGeneratorTypeDefault,
	InstanceGeneratorTypeCrossValidation,
	InstanceGeneratorTypeRandomSubSampling,
}
