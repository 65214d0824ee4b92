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
	"path/filepath"

	"d7y.io/autoweka/internal/awerrors"
	"d7y.io/autoweka/pkg/util/fileutils"
)

const (
	// TrainFileSuffix suffixes generated training files.
	TrainFileSuffix = "_train.arff"

	// TestFileSuffix suffixes generated test files.
	TestFileSuffix = "_test.arff"
)

// Dataset names the data files of an experiment.
type Dataset struct {
	// Name identifies the dataset inside the experiment.
	Name string

	// TrainFile is the absolute path of the training file.
	TrainFile string

	// TestFile is the absolute path of the test file, empty when the
	// training file is reused.
	TestFile string
}

// NewDataset returns a dataset referencing existing files. The name
// defaults to the base name of trainFile.
func NewDataset(trainFile, testFile, name string) (*Dataset, error) {
	if !fileutils.IsRegularFile(trainFile) {
		return nil, awerrors.Newf(awerrors.CodeFileNotFound, "train file %s doesn't exist", trainFile)
	}

	if testFile != "" && !fileutils.IsRegularFile(testFile) {
		return nil, awerrors.Newf(awerrors.CodeFileNotFound, "test file %s doesn't exist", testFile)
	}

	if name == "" {
		name = filepath.Base(trainFile)
	}

	if !validName(name) {
		return nil, awerrors.Newf(awerrors.CodeConfiguration, "dataset name %q is not filesystem safe", name)
	}

	d := &Dataset{Name: name}
	var err error
	if d.TrainFile, err = filepath.Abs(trainFile); err != nil {
		return nil, err
	}

	if testFile != "" {
		if d.TestFile, err = filepath.Abs(testFile); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// TestArff returns the test file, falling back to the training file.
func (d *Dataset) TestArff() string {
	if d.TestFile == "" {
		return d.TrainFile
	}

	return d.TestFile
}
