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

//go:generate mockgen -destination mocks/autoweka_mock.go -source autoweka.go -package mocks

package autoweka

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"

	"d7y.io/autoweka/internal/awerrors"
	"d7y.io/autoweka/pkg/java"
)

// Main classes of the Auto-WEKA jar.
const (
	ExperimentConstructorClass       = "autoweka.ExperimentConstructor"
	ExperimentRunnerClass            = "autoweka.tools.ExperimentRunner"
	TrajectoryMergerClass            = "autoweka.TrajectoryMerger"
	GetBestFromTrajectoryGroupClass  = "autoweka.tools.GetBestFromTrajectoryGroup"
	TrainedModelPredictionMakerClass = "autoweka.tools.TrainedModelPredictionMaker"
)

// BestSeedPrefix prefixes the line reporting the best seed of a trajectory group.
const BestSeedPrefix = "Best point seed"

// PredictRequest names the artifacts used by the prediction maker.
type PredictRequest struct {
	// Model is the trained model file.
	Model string

	// AttributeSelection is the trained attribute selection file.
	AttributeSelection string

	// Dataset is the ARFF file to predict.
	Dataset string

	// PredictionPath is the CSV file predictions are written to.
	PredictionPath string
}

// Client is the interface used for invoking Auto-WEKA entry points.
type Client interface {
	// ConstructExperiment builds the experiment folders described by the experiment document.
	ConstructExperiment(ctx context.Context, document string) error

	// RunExperiment runs the experiment in folder with the given seed.
	RunExperiment(ctx context.Context, folder string, seed int) error

	// MergeTrajectories merges the per seed trajectories of the experiment in folder.
	MergeTrajectories(ctx context.Context, folder string) error

	// BestSeed returns the best seed of the merged trajectories file.
	BestSeed(ctx context.Context, trajectories string) (int, error)

	// Predict writes predictions of a trained model.
	Predict(ctx context.Context, req *PredictRequest) error
}

type client struct {
	runner java.Runner
}

// New returns a new Client running Auto-WEKA through runner.
func New(runner java.Runner) Client {
	return &client{runner: runner}
}

// ConstructExperiment builds the experiment folders described by the experiment document.
func (c *client) ConstructExperiment(ctx context.Context, document string) error {
	return c.runner.Run(ctx, ExperimentConstructorClass, document)
}

// RunExperiment runs the experiment in folder with the given seed.
func (c *client) RunExperiment(ctx context.Context, folder string, seed int) error {
	return c.runner.Run(ctx, ExperimentRunnerClass, folder, strconv.Itoa(seed))
}

// MergeTrajectories merges the per seed trajectories of the experiment in folder.
func (c *client) MergeTrajectories(ctx context.Context, folder string) error {
	return c.runner.Run(ctx, TrajectoryMergerClass, folder)
}

// BestSeed returns the best seed of the merged trajectories file.
func (c *client) BestSeed(ctx context.Context, trajectories string) (int, error) {
	out, err := c.runner.Output(ctx, GetBestFromTrajectoryGroupClass, trajectories)
	if err != nil {
		return -1, err
	}

	return ParseBestSeed(out)
}

// Predict writes predictions of a trained model.
func (c *client) Predict(ctx context.Context, req *PredictRequest) error {
	return c.runner.Run(ctx, TrainedModelPredictionMakerClass,
		"-model", req.Model,
		"-attributeselection", req.AttributeSelection,
		"-dataset", req.Dataset,
		"-predictionpath", req.PredictionPath,
	)
}

// ParseBestSeed scans the output of the trajectory group query, the last
// line starting with BestSeedPrefix wins.
func ParseBestSeed(out []byte) (int, error) {
	seed := -1
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, BestSeedPrefix) {
			continue
		}

		value, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, BestSeedPrefix)))
		if err != nil {
			return -1, awerrors.Newf(awerrors.CodeBestSeedNotFound, "invalid best seed line %q", line)
		}
		seed = value
	}

	if err := scanner.Err(); err != nil {
		return -1, err
	}

	if seed < 0 {
		return -1, awerrors.New(awerrors.CodeBestSeedNotFound, "failed getting seed")
	}

	return seed, nil
}
