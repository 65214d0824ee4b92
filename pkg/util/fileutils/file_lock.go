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
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// ErrLocked is returned by TryLock when another holder owns the lock.
var ErrLocked = errors.New("file is locked")

// FileLock is an advisory lock on a file, shared between processes.
// Locks are not reentrant within one process: a second FileLock on the
// same path will fail TryLock while the first one holds it.
type FileLock struct {
	fileName string
	flock    *flock.Flock
}

// NewFileLock returns a lock on path, creating the parent directory.
func NewFileLock(path string) (*FileLock, error) {
	if err := MkdirAll(filepath.Dir(path)); err != nil {
		return nil, err
	}

	return &FileLock{
		fileName: path,
		flock:    flock.New(path),
	}, nil
}

// TryLock acquires the lock without blocking, it returns ErrLocked when the
// lock is held elsewhere.
func (locker *FileLock) TryLock() error {
	locked, err := locker.flock.TryLock()
	if err != nil {
		return errors.Wrapf(err, "failed to lock file %s", locker.fileName)
	}

	if !locked {
		return errors.Wrapf(ErrLocked, "lock file %s", locker.fileName)
	}

	return nil
}

func (locker *FileLock) Unlock() error {
	if err := locker.flock.Unlock(); err != nil {
		return errors.Wrapf(err, "failed to unlock file %s", locker.fileName)
	}

	return nil
}

func (locker *FileLock) Path() string {
	return locker.fileName
}
