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

package experiment

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// ResultMetric is the metric Auto-WEKA optimizes.
type ResultMetric string

const (
	ResultMetricErrorRate             ResultMetric = "errorRate"
	ResultMetricRMSE                  ResultMetric = "rmse"
	ResultMetricRRSE                  ResultMetric = "rrse"
	ResultMetricMeanAbsoluteError     ResultMetric = "meanAbsoluteErrorMetric"
	ResultMetricRelativeAbsoluteError ResultMetric = "relativeAbsoluteErrorMetric"
)

// ResultMetrics lists every result metric.
var ResultMetrics = []ResultMetric{
	ResultMetricErrorRate,
	ResultMetricRMSE,
	ResultMetricRRSE,
	ResultMetricMeanAbsoluteError,
	ResultMetricRelativeAbsoluteError,
}

// IsValid reports whether m is a known result metric.
func (m ResultMetric) IsValid() bool {
	return slices.Contains(ResultMetrics, m)
}

// OptimizationMethod is the model based optimizer driving the search.
type OptimizationMethod string

const (
	OptimizationMethodSMAC OptimizationMethod = "SMAC"
	OptimizationMethodTPE  OptimizationMethod = "TPE"
)

// OptimizationMethods lists every optimization method.
var OptimizationMethods = []OptimizationMethod{
	OptimizationMethodSMAC,
	OptimizationMethodTPE,
}

// IsValid reports whether m is a known optimization method.
func (m OptimizationMethod) IsValid() bool {
	return slices.Contains(OptimizationMethods, m)
}

// TPEPropertyOverride points the TPE runner at a hyperopt checkout.
const TPEPropertyOverride = `pythonpath=$PYTHONPATH\:~/src/hyperopt\:~/src/hyperopt/external:tperunner=./src/python/tperunner.py:python=/usr/bin/python2`

// SMACExtraProps are the extra properties of SMAC experiments.
const SMACExtraProps = "executionMode=SMAC:initialIncumbent=RANDOM:initialN=1"

// constructor is the fixed experiment constructor record of an optimization method.
type constructor struct {
	class      string
	args       []string
	extraProps string
}

// constructor returns the record of m, baseFolder and smacExecutable fill
// the environment dependent arguments.
func (m OptimizationMethod) constructor(baseFolder, smacExecutable string) (constructor, error) {
	switch m {
	case OptimizationMethodSMAC:
		return constructor{
			class:      "autoweka.smac.SMACExperimentConstructor",
			args:       []string{"-experimentpath", baseFolder, "-propertyoverride", "smacexecutable=" + smacExecutable},
			extraProps: SMACExtraProps,
		}, nil
	case OptimizationMethodTPE:
		return constructor{
			class:      "autoweka.tpe.TPEExperimentConstructor",
			args:       []string{"-experimentpath", baseFolder, "-propertyoverride", TPEPropertyOverride},
			extraProps: "",
		}, nil
	}

	return constructor{}, fmt.Errorf("unknown optimization method %q", string(m))
}
