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
	"time"

	"github.com/hashicorp/go-multierror"
)

// RunResult is the outcome of one seed on one dataset.
type RunResult struct {
	// Dataset is the dataset name.
	Dataset string

	// Seed is the seed passed to the experiment runner.
	Seed int

	// Err is the failure of the run, nil on success.
	Err error

	// CreatedAt is the start time of the run.
	CreatedAt time.Time

	// Cost is the duration of the run.
	Cost time.Duration
}

// RunReport collects the results of a Run call.
type RunReport struct {
	// ID is the run id, also used as the runID log field.
	ID string

	// Results holds one entry per dataset and seed, in execution order.
	Results []RunResult

	// Merged lists the datasets whose trajectories were merged.
	Merged []string
}

// Succeeded returns the successful runs.
func (r *RunReport) Succeeded() []RunResult {
	var results []RunResult
	for _, result := range r.Results {
		if result.Err == nil {
			results = append(results, result)
		}
	}

	return results
}

// Failed returns the failed runs.
func (r *RunReport) Failed() []RunResult {
	var results []RunResult
	for _, result := range r.Results {
		if result.Err != nil {
			results = append(results, result)
		}
	}

	return results
}

// SeedRunError is returned by Run when one or more seeds failed.
type SeedRunError struct {
	// Failed holds the failed runs.
	Failed []RunResult

	errs *multierror.Error
}

func newSeedRunError(failed []RunResult) *SeedRunError {
	e := &SeedRunError{Failed: failed}
	for _, result := range failed {
		e.errs = multierror.Append(e.errs, fmt.Errorf("dataset %s seed %d: %w", result.Dataset, result.Seed, result.Err))
	}

	return e
}

func (e *SeedRunError) Error() string {
	return e.errs.Error()
}

func (e *SeedRunError) Unwrap() error {
	return e.errs.Unwrap()
}
