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

// Package arff writes datasets in the attribute-relation file format read by Weka.
package arff

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"d7y.io/autoweka/pkg/util/fileutils"
)

const (
	// FileExt is extension of arff file name.
	FileExt = "arff"

	// ClassAttributeName is the name of the class attribute.
	ClassAttributeName = "class"

	// DefaultFeatureNamePrefix prefixes generated feature names.
	DefaultFeatureNamePrefix = "feature"
)

var (
	// ErrEmpty is returned when there is no example to write.
	ErrEmpty = errors.New("dataset has no examples")

	// ErrNoFeatures is returned when the examples have no feature.
	ErrNoFeatures = errors.New("dataset has no features")
)

// Dataset is an in-memory feature matrix with one label per example.
type Dataset struct {
	// Relation is the name of the relation.
	Relation string

	// Features is the feature matrix, examples x features.
	Features [][]float64

	// Labels holds the label of every example.
	Labels []string

	// FeatureNames names each feature, generated when empty.
	FeatureNames []string
}

// Validate checks the shape of the dataset.
func (d *Dataset) Validate() error {
	if len(d.Features) == 0 {
		return ErrEmpty
	}

	if len(d.Features) != len(d.Labels) {
		return fmt.Errorf("dataset has %d examples but %d labels", len(d.Features), len(d.Labels))
	}

	n := len(d.Features[0])
	if n == 0 {
		return ErrNoFeatures
	}

	for i, row := range d.Features {
		if len(row) != n {
			return fmt.Errorf("example %d has %d features, expected %d", i, len(row), n)
		}
	}

	if len(d.FeatureNames) != 0 && len(d.FeatureNames) != n {
		return fmt.Errorf("dataset has %d feature names but %d features", len(d.FeatureNames), n)
	}

	return nil
}

// ClassValues returns the distinct labels in first occurrence order.
func (d *Dataset) ClassValues() []string {
	seen := make(map[string]struct{}, len(d.Labels))
	values := make([]string, 0)
	for _, label := range d.Labels {
		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		values = append(values, label)
	}

	return values
}

func (d *Dataset) featureNames() []string {
	if len(d.FeatureNames) != 0 {
		return d.FeatureNames
	}

	names := make([]string, len(d.Features[0]))
	for i := range names {
		names[i] = DefaultFeatureNamePrefix + strconv.Itoa(i)
	}

	return names
}

// Write writes the dataset to w. Nothing is written when the dataset is invalid.
func Write(w io.Writer, d *Dataset) error {
	if err := d.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "@RELATION %s\n", Quote(d.Relation))
	for _, name := range d.featureNames() {
		fmt.Fprintf(bw, "@ATTRIBUTE %s REAL\n", Quote(name))
	}

	values := d.ClassValues()
	for i, value := range values {
		values[i] = Quote(value)
	}
	fmt.Fprintf(bw, "@ATTRIBUTE %s {%s}\n", ClassAttributeName, strings.Join(values, ", "))
	bw.WriteString("@DATA\n")

	for i, row := range d.Features {
		for _, value := range row {
			bw.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
			bw.WriteByte(',')
		}
		bw.WriteString(Quote(d.Labels[i]))
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// specialChars force a name or nominal value to be quoted.
const specialChars = " \t\n\r,{}'\"%\\"

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// Quote returns s as an ARFF token, single quoted and escaped when it is
// empty, the missing value marker or contains a delimiter.
func Quote(s string) string {
	if s != "" && s != "?" && !strings.ContainsAny(s, specialChars) {
		return s
	}

	return "'" + escaper.Replace(s) + "'"
}

// WriteFile writes the dataset to path, replacing any existing file.
func WriteFile(path string, d *Dataset) error {
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return err
	}

	return fileutils.WriteFile(path, buf.Bytes(), 0644)
}
