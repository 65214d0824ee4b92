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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"d7y.io/autoweka/pkg/util/fileutils"
)

const (
	// RunFilePrefix is prefix of run file name.
	RunFilePrefix = "runs"

	// CSVFileExt is extension of file name.
	CSVFileExt = "csv"
)

// Storage is the interface used for storage.
type Storage interface {
	// CreateRun appends a run to the csv file of the given experiment folder.
	CreateRun(Run, string) error

	// ListRun returns runs in the csv file of the given experiment folder,
	// it returns no runs when nothing was recorded.
	ListRun(string) ([]Run, error)

	// ClearRun removes the run file of the given experiment folder.
	ClearRun(string) error
}

type storage struct {
	baseDir string
}

// New returns a new Storage instance keeping run files under baseDir.
func New(baseDir string) Storage {
	return &storage{baseDir: baseDir}
}

// CreateRun appends a run to the csv file of the given experiment folder.
func (s *storage) CreateRun(run Run, folder string) error {
	filename := s.runFilename(folder)
	if err := fileutils.MkdirAll(filepath.Dir(filename)); err != nil {
		return err
	}

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalWithoutHeaders([]Run{run}, file)
}

// ListRun returns runs in the csv file of the given experiment folder.
func (s *storage) ListRun(folder string) ([]Run, error) {
	file, err := os.Open(s.runFilename(folder))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if info.Size() == 0 {
		return nil, nil
	}

	var runs []Run
	if err := gocsv.UnmarshalWithoutHeaders(file, &runs); err != nil {
		return nil, err
	}

	return runs, nil
}

// ClearRun removes the run file of the given experiment folder.
func (s *storage) ClearRun(folder string) error {
	if err := os.Remove(s.runFilename(folder)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// runFilename generates run file name based on the given experiment folder.
func (s *storage) runFilename(folder string) string {
	return filepath.Join(s.baseDir, folder, RunFilePrefix+"."+CSVFileExt)
}
