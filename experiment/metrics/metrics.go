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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"d7y.io/autoweka/pkg/types"
	"d7y.io/autoweka/version"
)

// Variables declared for metrics.
var (
	PrepareCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "prepare_total",
		Help:      "Counter of the number of the experiment preparing.",
	}, []string{"experiment"})

	PrepareFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "prepare_failure_total",
		Help:      "Counter of the number of failed of the experiment preparing.",
	}, []string{"experiment"})

	SeedRunCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "seed_run_total",
		Help:      "Counter of the number of the seed run.",
	}, []string{"experiment", "dataset"})

	SeedRunFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "seed_run_failure_total",
		Help:      "Counter of the number of failed of the seed run.",
	}, []string{"experiment", "dataset"})

	MergeCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "merge_total",
		Help:      "Counter of the number of the trajectory merging.",
	}, []string{"experiment", "dataset"})

	MergeFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "merge_failure_total",
		Help:      "Counter of the number of failed of the trajectory merging.",
	}, []string{"experiment", "dataset"})

	PredictCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "predict_total",
		Help:      "Counter of the number of the predicting.",
	}, []string{"experiment"})

	PredictFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "predict_failure_total",
		Help:      "Counter of the number of failed of the predicting.",
	}, []string{"experiment"})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExperimentMetricsName,
		Name:      "version",
		Help:      "Version info of the command.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version"})
)

// WriteTextfile writes every registered metric to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string) error {
	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion).Set(1)
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
