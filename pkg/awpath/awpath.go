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

package awpath

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

var (
	// DefaultWorkHome is the current working directory.
	DefaultWorkHome = "."

	// DefaultExperimentDirName is the name of the experiment base folder under the work home.
	DefaultExperimentDirName = "experiments"

	// DefaultLogDirName is the name of the log directory under the work home.
	DefaultLogDirName = "logs"

	// DefaultDirMode is the mode of created directories.
	DefaultDirMode = fs.FileMode(0755)
)

// Awpath is the interface used for the workspace layout of experiments.
type Awpath interface {
	// WorkHome is the root of the workspace.
	WorkHome() string

	// ExperimentDir is the base folder Auto-WEKA builds experiment folders in.
	ExperimentDir() string

	// ConfigDir is where experiment XML documents are written.
	ConfigDir() string

	// DataDir is where generated ARFF files are written.
	DataDir() string

	// LogDir is where file loggers write.
	LogDir() string
}

type awpath struct {
	workHome      string
	experimentDir string
	configDir     string
	dataDir       string
	logDir        string
	dirMode       fs.FileMode
}

// Option is a functional option for configuring the awpath.
type Option func(d *awpath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(d *awpath) {
		d.workHome = dir
	}
}

// WithExperimentDir set the experiment base folder.
func WithExperimentDir(dir string) Option {
	return func(d *awpath) {
		d.experimentDir = dir
	}
}

// WithConfigDir set the directory of experiment documents.
func WithConfigDir(dir string) Option {
	return func(d *awpath) {
		d.configDir = dir
	}
}

// WithDataDir set the directory of generated datasets.
func WithDataDir(dir string) Option {
	return func(d *awpath) {
		d.dataDir = dir
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(d *awpath) {
		d.logDir = dir
	}
}

// WithDirMode sets the mode of created directories.
func WithDirMode(mode fs.FileMode) Option {
	return func(d *awpath) {
		d.dirMode = mode
	}
}

// New returns a new awpath interface. Directories that are not set
// explicitly are derived from the work home, every directory is made
// absolute and created.
func New(options ...Option) (Awpath, error) {
	d := &awpath{
		workHome: DefaultWorkHome,
		dirMode:  DefaultDirMode,
	}

	for _, opt := range options {
		opt(d)
	}

	if d.experimentDir == "" {
		d.experimentDir = filepath.Join(d.workHome, DefaultExperimentDirName)
	}

	if d.configDir == "" {
		d.configDir = d.workHome
	}

	if d.dataDir == "" {
		d.dataDir = d.workHome
	}

	if d.logDir == "" {
		d.logDir = filepath.Join(d.workHome, DefaultLogDirName)
	}

	var errs *multierror.Error
	for _, dir := range []*string{&d.workHome, &d.experimentDir, &d.configDir, &d.dataDir, &d.logDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		*dir = abs

		if err := os.MkdirAll(abs, d.dirMode); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *awpath) WorkHome() string {
	return d.workHome
}

func (d *awpath) ExperimentDir() string {
	return d.experimentDir
}

func (d *awpath) ConfigDir() string {
	return d.configDir
}

func (d *awpath) DataDir() string {
	return d.dataDir
}

func (d *awpath) LogDir() string {
	return d.logDir
}
