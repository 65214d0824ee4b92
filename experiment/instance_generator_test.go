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
	"testing"

	"github.com/stretchr/testify/assert"

	"d7y.io/autoweka/internal/awerrors"
)

func TestInstanceGenerator(t *testing.T) {
	tests := []struct {
		name      string
		generator func() (InstanceGenerator, error)
		expect    func(t *testing.T, g InstanceGenerator, err error)
	}{
		{
			name:      "default",
			generator: func() (InstanceGenerator, error) { return DefaultInstanceGenerator(), nil },
			expect: func(t *testing.T, g InstanceGenerator, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("autoweka.instancegenerators.Default", g.Name())
				assert.Empty(g.Args())
			},
		},
		{
			name:      "cross validation",
			generator: func() (InstanceGenerator, error) { return NewCrossValidation(0, 10) },
			expect: func(t *testing.T, g InstanceGenerator, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("autoweka.instancegenerators.CrossValidation", g.Name())
				assert.Equal("seed=0:numFolds=10", g.Args())
			},
		},
		{
			name:      "cross validation with one fold",
			generator: func() (InstanceGenerator, error) { return NewCrossValidation(0, 1) },
			expect: func(t *testing.T, g InstanceGenerator, err error) {
				assert := assert.New(t)
				assert.True(awerrors.CheckError(err, awerrors.CodeConfiguration))
			},
		},
		{
			name:      "random sub sampling",
			generator: func() (InstanceGenerator, error) { return NewRandomSubSampling(0, 10, 66) },
			expect: func(t *testing.T, g InstanceGenerator, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("autoweka.instancegenerators.RandomSubSampling", g.Name())
				assert.Equal("startingSeed=0:numSamples=10:percent=66", g.Args())
			},
		},
		{
			name: "random sub sampling with bias",
			generator: func() (InstanceGenerator, error) {
				return NewRandomSubSampling(3, 5, 70, WithBias(0.5))
			},
			expect: func(t *testing.T, g InstanceGenerator, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("startingSeed=3:numSamples=5:percent=70:bias=0.5", g.Args())
			},
		},
		{
			name:      "random sub sampling with invalid percent",
			generator: func() (InstanceGenerator, error) { return NewRandomSubSampling(0, 10, 100) },
			expect: func(t *testing.T, g InstanceGenerator, err error) {
				assert := assert.New(t)
				assert.True(awerrors.CheckError(err, awerrors.CodeConfiguration))
			},
		},
		{
			name:      "random sub sampling without samples",
			generator: func() (InstanceGenerator, error) { return NewRandomSubSampling(0, 0, 50) },
			expect: func(t *testing.T, g InstanceGenerator, err error) {
				assert := assert.New(t)
				assert.True(awerrors.CheckError(err, awerrors.CodeConfiguration))
			},
		},
		{
			name: "random sub sampling with invalid bias",
			generator: func() (InstanceGenerator, error) {
				return NewRandomSubSampling(0, 10, 50, WithBias(1.5))
			},
			expect: func(t *testing.T, g InstanceGenerator, err error) {
				assert := assert.New(t)
				assert.True(awerrors.CheckError(err, awerrors.CodeConfiguration))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := tc.generator()
			tc.expect(t, g, err)
		})
	}
}
