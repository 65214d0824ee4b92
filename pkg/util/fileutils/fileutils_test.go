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

package fileutils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileUtils_Stat(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "foo")
	require.NoError(t, os.WriteFile(file, []byte("bar"), 0600))

	assert.True(PathExist(dir))
	assert.True(PathExist(file))
	assert.False(PathExist(filepath.Join(dir, "baz")))
	assert.True(IsRegularFile(file))
	assert.False(IsRegularFile(dir))
}

func TestFileUtils_WriteFile(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "foo", "bar.xml")

	assert.NoError(WriteFile(file, []byte("baz"), 0644))
	data, err := os.ReadFile(file)
	assert.NoError(err)
	assert.Equal("baz", string(data))

	assert.NoError(WriteFile(file, []byte("qux"), 0644))
	data, err = os.ReadFile(file)
	assert.NoError(err)
	assert.Equal("qux", string(data))

	entries, err := os.ReadDir(filepath.Dir(file))
	assert.NoError(err)
	assert.Len(entries, 1)
}

func TestFileLock(t *testing.T) {
	tests := []struct {
		name   string
		expect func(t *testing.T, path string)
	}{
		{
			name: "lock and unlock",
			expect: func(t *testing.T, path string) {
				assert := assert.New(t)
				lock, err := NewFileLock(path)
				assert.NoError(err)
				assert.Equal(path, lock.Path())
				assert.NoError(lock.TryLock())
				assert.NoError(lock.Unlock())
			},
		},
		{
			name: "try lock held by other locker",
			expect: func(t *testing.T, path string) {
				assert := assert.New(t)
				first, err := NewFileLock(path)
				assert.NoError(err)
				second, err := NewFileLock(path)
				assert.NoError(err)

				assert.NoError(first.TryLock())
				err = second.TryLock()
				assert.True(errors.Is(err, ErrLocked))

				assert.NoError(first.Unlock())
				assert.NoError(second.TryLock())
				assert.NoError(second.Unlock())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, filepath.Join(t.TempDir(), "locks", "foo.lock"))
		})
	}
}
