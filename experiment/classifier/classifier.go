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

package classifier

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/exp/slices"

	logger "d7y.io/autoweka/internal/awlog"
)

const (
	// DefaultPattern matches the parameter definition files of classifiers.
	DefaultPattern = "weka.classifiers*.params"

	// ParamsFileExt is the suffix stripped from file names to get identifiers.
	ParamsFileExt = ".params"
)

// Registry holds the classifier identifiers found in a params directory.
// It is read only once built.
type Registry struct {
	dir string
	ids map[string]struct{}
}

// Option is a functional option for configuring the registry.
type Option func(o *options)

type options struct {
	pattern string
}

// WithPattern overrides the file name pattern.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// New walks dir recursively and collects the identifiers of matching
// parameter files. A missing or empty directory yields an empty registry.
func New(dir string, opts ...Option) (*Registry, error) {
	o := &options{pattern: DefaultPattern}
	for _, opt := range opts {
		opt(o)
	}

	g, err := glob.Compile(o.pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("failed to interpret glob pattern %s: %w", o.pattern, err)
	}

	r := &Registry{
		dir: dir,
		ids: make(map[string]struct{}),
	}

	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !g.Match(entry.Name()) {
			return nil
		}

		r.ids[strings.TrimSuffix(entry.Name(), ParamsFileExt)] = struct{}{}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if len(r.ids) == 0 {
		logger.Warnf("no classifier found in %s, every classifier will be rejected", dir)
	}

	return r, nil
}

// Contains reports whether id is a known classifier.
func (r *Registry) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// IDs returns the sorted identifiers.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}

	slices.Sort(ids)
	return ids
}

// Len returns the number of identifiers.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Dir returns the scanned directory.
func (r *Registry) Dir() string {
	return r.dir
}
