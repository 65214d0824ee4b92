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

// Package fileutils provides utilities supplementing the standard 'os' and 'path' package.
package fileutils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MkdirAll creates a directory named path on perm(0755).
func MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// PathExist reports whether the path is exist.
// Any error get from os.Stat, it will return false.
func PathExist(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// IsRegularFile reports whether the file is a regular file.
// If the given file is a symbol link, it will follow the link.
func IsRegularFile(name string) bool {
	f, e := os.Stat(name)
	if e != nil {
		return false
	}

	return f.Mode().IsRegular()
}

// WriteFile writes data to a temporary file next to path and renames it
// over path, so readers never observe a partially written file. The parent
// directory is created when missing.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := MkdirAll(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "write %s", path)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
