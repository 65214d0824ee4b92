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

package arff

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name    string
		dataset *Dataset
		expect  func(t *testing.T, out string, err error)
	}{
		{
			name: "two rows",
			dataset: &Dataset{
				Relation: "foo",
				Features: [][]float64{{1, 2}, {3, 4}},
				Labels:   []string{"a", "b"},
			},
			expect: func(t *testing.T, out string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("@RELATION foo\n"+
					"@ATTRIBUTE feature0 REAL\n"+
					"@ATTRIBUTE feature1 REAL\n"+
					"@ATTRIBUTE class {a, b}\n"+
					"@DATA\n"+
					"1,2,a\n"+
					"3,4,b\n", out)

				data := strings.SplitN(out, "@DATA\n", 2)[1]
				rows := strings.Split(strings.TrimSuffix(data, "\n"), "\n")
				assert.Len(rows, 2)
				for i, label := range []string{"a", "b"} {
					fields := strings.Split(rows[i], ",")
					assert.Equal(label, fields[len(fields)-1])
				}
			},
		},
		{
			name: "labels in first occurrence order",
			dataset: &Dataset{
				Relation:     "bar",
				Features:     [][]float64{{0.5}, {1.25}, {2}, {3}},
				Labels:       []string{"z", "a", "z", "m"},
				FeatureNames: []string{"width"},
			},
			expect: func(t *testing.T, out string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Contains(out, "@ATTRIBUTE width REAL\n")
				assert.Contains(out, "@ATTRIBUTE class {z, a, m}\n")
				assert.Contains(out, "0.5,z\n1.25,a\n2,z\n3,m\n")
			},
		},
		{
			name: "quoted names and labels",
			dataset: &Dataset{
				Relation:     "iris data",
				Features:     [][]float64{{1}, {2}, {3}},
				Labels:       []string{"Iris setosa", "a,b", "it's"},
				FeatureNames: []string{"sepal{length}"},
			},
			expect: func(t *testing.T, out string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("@RELATION 'iris data'\n"+
					"@ATTRIBUTE 'sepal{length}' REAL\n"+
					"@ATTRIBUTE class {'Iris setosa', 'a,b', 'it\\'s'}\n"+
					"@DATA\n"+
					"1,'Iris setosa'\n"+
					"2,'a,b'\n"+
					"3,'it\\'s'\n", out)
			},
		},
		{
			name:    "zero rows",
			dataset: &Dataset{Relation: "foo"},
			expect: func(t *testing.T, out string, err error) {
				assert := assert.New(t)
				assert.True(errors.Is(err, ErrEmpty))
				assert.Empty(out)
			},
		},
		{
			name: "mismatched labels",
			dataset: &Dataset{
				Relation: "foo",
				Features: [][]float64{{1, 2}, {3, 4}},
				Labels:   []string{"a"},
			},
			expect: func(t *testing.T, out string, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "dataset has 2 examples but 1 labels")
				assert.Empty(out)
			},
		},
		{
			name: "ragged rows",
			dataset: &Dataset{
				Relation: "foo",
				Features: [][]float64{{1, 2}, {3}},
				Labels:   []string{"a", "b"},
			},
			expect: func(t *testing.T, out string, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "example 1 has 1 features, expected 2")
			},
		},
		{
			name: "no features",
			dataset: &Dataset{
				Relation: "foo",
				Features: [][]float64{{}},
				Labels:   []string{"a"},
			},
			expect: func(t *testing.T, out string, err error) {
				assert := assert.New(t)
				assert.True(errors.Is(err, ErrNoFeatures))
			},
		},
		{
			name: "feature names mismatch",
			dataset: &Dataset{
				Relation:     "foo",
				Features:     [][]float64{{1, 2}},
				Labels:       []string{"a"},
				FeatureNames: []string{"x"},
			},
			expect: func(t *testing.T, out string, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "dataset has 1 feature names but 2 features")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tc.dataset)
			tc.expect(t, buf.String(), err)
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		value  string
		expect string
	}{
		{value: "setosa", expect: "setosa"},
		{value: "", expect: "''"},
		{value: "?", expect: "'?'"},
		{value: "a b", expect: "'a b'"},
		{value: "50%", expect: "'50%'"},
		{value: `c:\data`, expect: `'c:\\data'`},
		{value: "a\tb", expect: `'a\tb'`},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, Quote(tc.value))
		})
	}
}

func TestWriteFile(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "data", "d1_train.arff")
	assert.NoError(WriteFile(path, &Dataset{
		Relation: "d1",
		Features: [][]float64{{1, 2, 3}, {4, 5, 6}},
		Labels:   []string{"yes", "no"},
	}))

	data, err := os.ReadFile(path)
	assert.NoError(err)
	assert.True(strings.HasPrefix(string(data), "@RELATION d1\n"))

	empty := filepath.Join(filepath.Dir(path), "empty.arff")
	assert.Error(WriteFile(empty, &Dataset{Relation: "d1"}))
	assert.NoFileExists(empty)
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name       string
		content    string
		hasHeaders bool
		expect     func(t *testing.T, d *Dataset, err error)
	}{
		{
			name:       "with headers",
			content:    "width,height,kind\n1.5,2.5,foo\n3.5,4.5,bar\n5.5,6.5,foo\n",
			hasHeaders: true,
			expect: func(t *testing.T, d *Dataset, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal("iris", d.Relation)
				assert.Equal([]string{"width", "height"}, d.FeatureNames)
				assert.Len(d.Features, 3)
				assert.InDelta(1.5, d.Features[0][0], 1e-9)
				assert.InDelta(6.5, d.Features[2][1], 1e-9)
				assert.Equal([]string{"foo", "bar", "foo"}, d.Labels)
				assert.NoError(d.Validate())
			},
		},
		{
			name:       "non numeric feature",
			content:    "name,kind\nfoo,a\nbar,b\n",
			hasHeaders: true,
			expect: func(t *testing.T, d *Dataset, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.Nil(d)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "iris.csv")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0600))
			d, err := ReadCSV(path, tc.hasHeaders)
			tc.expect(t, d, err)
		})
	}

	_, err := ReadCSV(filepath.Join(dir, "missing.csv"), true)
	assert.Error(t, err)
}
