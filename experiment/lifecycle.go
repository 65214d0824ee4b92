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
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"d7y.io/autoweka/experiment/metrics"
	"d7y.io/autoweka/experiment/storage"
	"d7y.io/autoweka/internal/awerrors"
	logger "d7y.io/autoweka/internal/awlog"
	"d7y.io/autoweka/pkg/autoweka"
	"d7y.io/autoweka/pkg/util/fileutils"
)

const (
	// LockFileExt is extension of the experiment lock file.
	LockFileExt = ".lock"
)

// Prepare writes the experiment document and builds the experiment folder.
func (e *Experiment) Prepare(ctx context.Context) error {
	lock, err := e.lock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	return e.prepare(ctx)
}

func (e *Experiment) prepare(ctx context.Context) error {
	if len(e.datasets) == 0 {
		return awerrors.New(awerrors.CodeConfiguration, "no datasets added yet, see SetDataset")
	}

	log := e.Log.With("runID", uuid.NewString())
	document, err := e.Document()
	if err != nil {
		return err
	}

	fileName := filepath.Join(e.env.ConfigDir, e.name+DocumentFileExt)
	if err := fileutils.WriteFile(fileName, document, 0644); err != nil {
		return err
	}
	e.fileName = fileName
	log.Infof("experiment document written to %s", fileName)

	metrics.PrepareCount.WithLabelValues(e.name).Inc()
	if err := e.env.Client.ConstructExperiment(ctx, fileName); err != nil {
		metrics.PrepareFailureCount.WithLabelValues(e.name).Inc()
		log.Errorf("prepare failed: %s", err.Error())
		if e.Prepared() {
			if err := e.event(EventReset); err != nil {
				log.Error(err)
			}
		}

		return awerrors.Wrapf(awerrors.CodePreparation, err, "could not prepare the experiment")
	}

	// Runs recorded before a configuration change belong to another search.
	if e.stale {
		for _, d := range e.datasets {
			if err := e.env.Storage.ClearRun(e.folderName(d)); err != nil {
				log.Warnf("clear runs of dataset %s failed: %s", d.Name, err.Error())
			}
		}
		e.stale = false
	}

	return e.event(EventPrepare)
}

// Run runs every seed on every dataset sequentially, preparing the
// experiment first when needed. A failed seed does not stop the others.
// Trajectories of a dataset are merged when at least one of its seeds
// succeeded. Seed failures are returned as a *SeedRunError next to the report.
// Canceling ctx stops before the next seed and skips merging, the returned
// error then also matches ctx.Err().
func (e *Experiment) Run(ctx context.Context, seeds ...int) (*RunReport, error) {
	lock, err := e.lock()
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	if !e.Prepared() {
		if err := e.prepare(ctx); err != nil {
			return nil, err
		}
	}

	if len(seeds) == 0 {
		seeds = DefaultSeeds
	}

	report := &RunReport{ID: uuid.NewString()}
	log := e.Log.With("runID", report.ID)
	if err := e.event(EventRun); err != nil {
		return nil, err
	}
	log.Infof("running seeds %v, time allocated %s", seeds, time.Duration(e.config.TunerTimeout)*time.Second)

	var mergeErrs *multierror.Error
	for _, d := range e.datasets {
		if ctx.Err() != nil {
			break
		}

		dlog := logger.WithExperimentAndDataset(e.name, d.Name).With("runID", report.ID)
		dlog.Infof("running experiment on dataset %s", d.Name)

		succeeded := 0
		for _, seed := range seeds {
			if ctx.Err() != nil {
				break
			}

			result := e.runSeed(ctx, d, seed, report.ID)
			report.Results = append(report.Results, result)
			if result.Err == nil {
				succeeded++
			}
		}

		if err := ctx.Err(); err != nil {
			dlog.Warnf("run canceled, skip merging trajectories: %s", err.Error())
			break
		}

		if succeeded == 0 {
			dlog.Warnf("every seed failed, skip merging trajectories")
			continue
		}

		dlog.Infof("merging trajectories")
		metrics.MergeCount.WithLabelValues(e.name, d.Name).Inc()
		if err := e.env.Client.MergeTrajectories(ctx, e.Folder(d)); err != nil {
			metrics.MergeFailureCount.WithLabelValues(e.name, d.Name).Inc()
			dlog.Errorf("merge trajectories failed: %s", err.Error())
			mergeErrs = multierror.Append(mergeErrs, fmt.Errorf("merge trajectories of dataset %s: %w", d.Name, err))
			continue
		}

		report.Merged = append(report.Merged, d.Name)
	}

	event := EventRunFailed
	if len(report.Merged) > 0 {
		event = EventMerge
	}

	var errs *multierror.Error
	if err := e.event(event); err != nil {
		errs = multierror.Append(errs, err)
	}

	if failed := report.Failed(); len(failed) > 0 {
		errs = multierror.Append(errs, newSeedRunError(failed))
	}

	if mergeErrs != nil {
		errs = multierror.Append(errs, mergeErrs.Errors...)
	}

	if err := ctx.Err(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return report, errs.ErrorOrNil()
}

func (e *Experiment) runSeed(ctx context.Context, d *Dataset, seed int, runID string) RunResult {
	log := logger.WithExperimentAndDataset(e.name, d.Name).With("runID", runID, "seed", seed)
	log.Infof("running for seed %d", seed)

	result := RunResult{
		Dataset:   d.Name,
		Seed:      seed,
		CreatedAt: time.Now(),
	}

	metrics.SeedRunCount.WithLabelValues(e.name, d.Name).Inc()
	result.Err = e.env.Client.RunExperiment(ctx, e.Folder(d), seed)
	result.Cost = time.Since(result.CreatedAt)

	run := storage.Run{
		ID:         runID,
		Experiment: e.name,
		Dataset:    d.Name,
		Seed:       seed,
		State:      storage.RunStateSucceeded,
		CreatedAt:  result.CreatedAt.UnixNano(),
		UpdatedAt:  time.Now().UnixNano(),
	}

	if result.Err != nil {
		metrics.SeedRunFailureCount.WithLabelValues(e.name, d.Name).Inc()
		log.Errorf("seed %d failed: %s", seed, result.Err.Error())
		run.State = storage.RunStateFailed
		run.Error = result.Err.Error()
	} else {
		log.Infof("seed %d succeeded in %s", seed, result.Cost)
	}

	if err := e.env.Storage.CreateRun(run, e.folderName(d)); err != nil {
		log.Warnf("record run failed: %s", err.Error())
	}

	if e.runHook != nil {
		e.runHook(result)
	}

	return result
}

// BestSeed returns the seed whose search achieved the best result on the
// named dataset, the experiment must have been run and merged.
func (e *Experiment) BestSeed(ctx context.Context, dataset string) (int, error) {
	d, err := e.dataset(dataset)
	if err != nil {
		return -1, err
	}

	return e.bestSeed(ctx, d)
}

func (e *Experiment) bestSeed(ctx context.Context, d *Dataset) (int, error) {
	trajectories := e.TrajectoriesFile(d)
	if !fileutils.PathExist(trajectories) {
		return -1, awerrors.Newf(awerrors.CodeMissingArtifact, "trajectories file %s does not exist, did you run the experiment?", trajectories)
	}

	seed, err := e.env.Client.BestSeed(ctx, trajectories)
	if err != nil {
		if awerrors.CheckError(err, awerrors.CodeBestSeedNotFound) {
			return -1, err
		}

		return -1, awerrors.Wrapf(awerrors.CodeBestSeedNotFound, err, "failed getting seed")
	}

	if seed < 0 {
		return -1, awerrors.Newf(awerrors.CodeBestSeedNotFound, "failed getting seed, got %d", seed)
	}

	logger.WithExperimentAndDataset(e.name, d.Name).Infof("best seed is %d", seed)
	return seed, nil
}

// PredictFromFile predicts dataFile with the model trained by the best
// seed of the first dataset, predictions are written as CSV to
// predictionsFile by Auto-WEKA.
func (e *Experiment) PredictFromFile(ctx context.Context, dataFile, predictionsFile string) error {
	lock, err := e.lock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	if len(e.datasets) == 0 {
		return awerrors.New(awerrors.CodeConfiguration, "no datasets added yet, see SetDataset")
	}

	if !fileutils.IsRegularFile(dataFile) {
		return awerrors.Newf(awerrors.CodeFileNotFound, "data file %s doesn't exist", dataFile)
	}

	if predictionsFile == "" {
		predictionsFile = DefaultPredictionsFile
	}

	d := e.datasets[0]
	seed, err := e.bestSeed(ctx, d)
	if err != nil {
		return err
	}

	folder := e.Folder(d)
	req := &autoweka.PredictRequest{
		Model:              filepath.Join(folder, fmt.Sprintf("trained.%d.model", seed)),
		AttributeSelection: filepath.Join(folder, fmt.Sprintf("trained.%d.attributeselection", seed)),
		Dataset:            dataFile,
		PredictionPath:     predictionsFile,
	}

	metrics.PredictCount.WithLabelValues(e.name).Inc()
	if err := e.env.Client.Predict(ctx, req); err != nil {
		metrics.PredictFailureCount.WithLabelValues(e.name).Inc()
		return fmt.Errorf("predict %s: %w", dataFile, err)
	}

	logger.WithExperimentAndDataset(e.name, d.Name).With("seed", seed).Infof("predictions written to %s", predictionsFile)
	return nil
}

// Runs returns the recorded seed runs of the named dataset.
func (e *Experiment) Runs(dataset string) ([]storage.Run, error) {
	d, err := e.dataset(dataset)
	if err != nil {
		return nil, err
	}

	return e.env.Storage.ListRun(e.folderName(d))
}

// lock takes the experiment lock file without blocking.
func (e *Experiment) lock() (*fileutils.FileLock, error) {
	lock, err := fileutils.NewFileLock(filepath.Join(e.env.BaseFolder, "."+e.name+LockFileExt))
	if err != nil {
		return nil, err
	}

	if err := lock.TryLock(); err != nil {
		if errors.Is(err, fileutils.ErrLocked) {
			return nil, awerrors.Newf(awerrors.CodeLocked, "experiment %s is locked by another process, lock file %s", e.name, lock.Path())
		}

		return nil, err
	}

	return lock, nil
}
