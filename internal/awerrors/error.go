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

package awerrors

import (
	"errors"
	"fmt"
)

// Code classifies an Error.
type Code int

const (
	// CodeConfiguration is returned for invalid experiment configuration,
	// it is raised eagerly when the experiment is built or mutated.
	CodeConfiguration Code = iota + 1

	// CodePreparation is returned when the experiment constructor exits non-zero.
	CodePreparation

	// CodeMissingArtifact is returned when an on-disk artifact produced by
	// an earlier lifecycle step is absent.
	CodeMissingArtifact

	// CodeBestSeedNotFound is returned when the trajectory group query
	// does not report a usable seed.
	CodeBestSeedNotFound

	// CodeFileNotFound is returned for missing user supplied files.
	CodeFileNotFound

	// CodeLocked is returned when another process holds the experiment lock.
	CodeLocked
)

// String returns the name of the code.
func (c Code) String() string {
	switch c {
	case CodeConfiguration:
		return "ConfigurationError"
	case CodePreparation:
		return "PreparationError"
	case CodeMissingArtifact:
		return "MissingArtifactError"
	case CodeBestSeedNotFound:
		return "BestSeedNotFoundError"
	case CodeFileNotFound:
		return "FileNotFoundError"
	case CodeLocked:
		return "LockedError"
	}

	return fmt.Sprintf("Code(%d)", int(c))
}

type Error struct {
	Code    Code
	Message string

	// Cause is the wrapped error, nil when the error originates here.
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s]%s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code Code, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
	}
}

func Newf(code Code, format string, a ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, a...),
	}
}

// Wrapf returns an Error caused by err, the message ends with err's text.
func Wrapf(code Code, err error, format string, a ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, a...) + ": " + err.Error(),
		Cause:   err,
	}
}

// CheckError reports whether any error in err's chain is an *Error with the given code.
func CheckError(err error, code Code) bool {
	if err == nil {
		return false
	}

	var e *Error
	return errors.As(err, &e) && e.Code == code
}
