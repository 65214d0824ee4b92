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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		options func(dir string) []Option
		expect  func(t *testing.T, dir string, d Awpath, err error)
	}{
		{
			name: "new awpath by workHome",
			options: func(dir string) []Option {
				return []Option{WithWorkHome(dir)}
			},
			expect: func(t *testing.T, dir string, d Awpath, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(dir, d.WorkHome())
				assert.Equal(filepath.Join(dir, DefaultExperimentDirName), d.ExperimentDir())
				assert.Equal(dir, d.ConfigDir())
				assert.Equal(dir, d.DataDir())
				assert.Equal(filepath.Join(dir, DefaultLogDirName), d.LogDir())
				assert.DirExists(d.ExperimentDir())
				assert.DirExists(d.LogDir())
			},
		},
		{
			name: "new awpath by explicit directories",
			options: func(dir string) []Option {
				return []Option{
					WithWorkHome(dir),
					WithExperimentDir(filepath.Join(dir, "foo")),
					WithConfigDir(filepath.Join(dir, "bar")),
					WithDataDir(filepath.Join(dir, "baz")),
					WithLogDir(filepath.Join(dir, "qux")),
					WithDirMode(os.FileMode(0700)),
				}
			},
			expect: func(t *testing.T, dir string, d Awpath, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(filepath.Join(dir, "foo"), d.ExperimentDir())
				assert.Equal(filepath.Join(dir, "bar"), d.ConfigDir())
				assert.Equal(filepath.Join(dir, "baz"), d.DataDir())
				assert.Equal(filepath.Join(dir, "qux"), d.LogDir())

				info, err := os.Stat(d.ExperimentDir())
				assert.NoError(err)
				assert.Equal(os.FileMode(0700), info.Mode().Perm())
			},
		},
		{
			name: "new awpath failed",
			options: func(dir string) []Option {
				file := filepath.Join(dir, "file")
				if err := os.WriteFile(file, []byte("foo"), 0600); err != nil {
					t.Fatal(err)
				}

				return []Option{WithWorkHome(dir), WithExperimentDir(filepath.Join(file, "experiments"))}
			},
			expect: func(t *testing.T, dir string, d Awpath, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.Nil(d)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			d, err := New(tc.options(dir)...)
			tc.expect(t, dir, d, err)
		})
	}
}
