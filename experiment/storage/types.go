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

package storage

const (
	// RunStateSucceeded is the state of a seed run that exited zero.
	RunStateSucceeded = "Succeeded"

	// RunStateFailed is the state of a seed run that failed.
	RunStateFailed = "Failed"
)

// Run contains content for a seed run of an experiment on a dataset.
type Run struct {
	// ID is the run id, shared by all seeds of one Run call.
	ID string `csv:"id"`

	// Experiment is the experiment name.
	Experiment string `csv:"experiment"`

	// Dataset is the dataset name.
	Dataset string `csv:"dataset"`

	// Seed is the random seed passed to the experiment runner.
	Seed int `csv:"seed"`

	// State is RunStateSucceeded or RunStateFailed.
	State string `csv:"state"`

	// Error is the failure message, empty on success.
	Error string `csv:"error"`

	// CreatedAt is the start time in nanoseconds.
	CreatedAt int64 `csv:"createdAt"`

	// UpdatedAt is the finish time in nanoseconds.
	UpdatedAt int64 `csv:"updatedAt"`
}
