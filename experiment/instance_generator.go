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
	"strconv"
	"strings"

	"d7y.io/autoweka/internal/awerrors"
)

const (
	// DefaultInstanceGeneratorName is used when no instance generator is set.
	DefaultInstanceGeneratorName = "autoweka.instancegenerators.Default"

	// CrossValidationName is the name of the cross validation generator.
	CrossValidationName = "autoweka.instancegenerators.CrossValidation"

	// RandomSubSamplingName is the name of the random sub sampling generator.
	RandomSubSamplingName = "autoweka.instancegenerators.RandomSubSampling"
)

// InstanceGenerator partitions the training set into folds for the search.
type InstanceGenerator interface {
	// Name is the Auto-WEKA class of the generator.
	Name() string

	// Args is the serialized parameter string.
	Args() string
}

type param struct {
	key   string
	value string
}

func joinParams(params []param) string {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, p.key+"="+p.value)
	}

	return strings.Join(pairs, ":")
}

type defaultGenerator struct{}

// DefaultInstanceGenerator returns the generator used when none is configured.
func DefaultInstanceGenerator() InstanceGenerator {
	return defaultGenerator{}
}

func (defaultGenerator) Name() string { return DefaultInstanceGeneratorName }

func (defaultGenerator) Args() string { return "" }

// CrossValidation performs k-fold cross validation on the training set.
type CrossValidation struct {
	seed     int
	numFolds int
}

// NewCrossValidation returns a cross validation generator, numFolds must be at least 2.
func NewCrossValidation(seed, numFolds int) (*CrossValidation, error) {
	if numFolds < 2 {
		return nil, awerrors.Newf(awerrors.CodeConfiguration, "cross validation requires at least 2 folds, got %d", numFolds)
	}

	return &CrossValidation{seed: seed, numFolds: numFolds}, nil
}

func (c *CrossValidation) Name() string {
	return CrossValidationName
}

func (c *CrossValidation) Args() string {
	return joinParams([]param{
		{"seed", strconv.Itoa(c.seed)},
		{"numFolds", strconv.Itoa(c.numFolds)},
	})
}

// RandomSubSampling generates folds by randomly partitioning a fixed
// percentage of the training data.
type RandomSubSampling struct {
	startingSeed int
	numSamples   int
	percent      int
	bias         float64
}

// RandomSubSamplingOption is a functional option for random sub sampling.
type RandomSubSamplingOption func(r *RandomSubSampling)

// WithBias sets the bias towards a uniform class distribution.
func WithBias(bias float64) RandomSubSamplingOption {
	return func(r *RandomSubSampling) {
		r.bias = bias
	}
}

// NewRandomSubSampling returns a random sub sampling generator.
func NewRandomSubSampling(startingSeed, numSamples, percent int, options ...RandomSubSamplingOption) (*RandomSubSampling, error) {
	r := &RandomSubSampling{
		startingSeed: startingSeed,
		numSamples:   numSamples,
		percent:      percent,
	}

	for _, opt := range options {
		opt(r)
	}

	if r.numSamples < 1 {
		return nil, awerrors.Newf(awerrors.CodeConfiguration, "random sub sampling requires at least 1 sample, got %d", r.numSamples)
	}

	if r.percent <= 0 || r.percent >= 100 {
		return nil, awerrors.Newf(awerrors.CodeConfiguration, "random sub sampling requires percent in (0, 100), got %d", r.percent)
	}

	if r.bias < 0 || r.bias > 1 {
		return nil, awerrors.Newf(awerrors.CodeConfiguration, "random sub sampling requires bias in (0, 1], got %g", r.bias)
	}

	return r, nil
}

func (r *RandomSubSampling) Name() string {
	return RandomSubSamplingName
}

func (r *RandomSubSampling) Args() string {
	params := []param{
		{"startingSeed", strconv.Itoa(r.startingSeed)},
		{"numSamples", strconv.Itoa(r.numSamples)},
		{"percent", strconv.Itoa(r.percent)},
	}

	// Zero bias is unset.
	if r.bias > 0 {
		params = append(params, param{"bias", strconv.FormatFloat(r.bias, 'g', -1, 64)})
	}

	return joinParams(params)
}
