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

//go:generate mockgen -destination mocks/java_mock.go -source java.go -package mocks

package java

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	logger "d7y.io/autoweka/internal/awlog"
)

const (
	// DefaultBinary is the java launcher looked up in PATH.
	DefaultBinary = "java"
)

// ExitError is returned when a java process exits with a non-zero code.
type ExitError struct {
	// Class is the main class of the process.
	Class string

	// Code is the exit code of the process.
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("java class %s exited with code %d", e.Class, e.Code)
}

// Runner is the interface used for running java main classes.
type Runner interface {
	// Run executes the main class with args and waits for it to exit.
	Run(ctx context.Context, class string, args ...string) error

	// Output executes the main class with args and returns its standard output.
	Output(ctx context.Context, class string, args ...string) ([]byte, error)

	// Command returns the full command line used for the main class.
	Command(class string, args ...string) []string
}

type runner struct {
	binary     string
	classpath  string
	hideOutput bool
	stdout     io.Writer
	stderr     io.Writer
}

// Option is a functional option for configuring the runner.
type Option func(r *runner)

// WithBinary sets the java launcher.
func WithBinary(binary string) Option {
	return func(r *runner) {
		r.binary = binary
	}
}

// WithHideOutput discards the output of the processes.
func WithHideOutput(hide bool) Option {
	return func(r *runner) {
		r.hideOutput = hide
	}
}

// WithOutput sets the writers the process output is forwarded to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New returns a new Runner using classpath for every invocation.
func New(classpath string, options ...Option) Runner {
	r := &runner{
		binary:    DefaultBinary,
		classpath: classpath,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}

	for _, opt := range options {
		opt(r)
	}

	return r
}

// Run executes the main class with args and waits for it to exit.
func (r *runner) Run(ctx context.Context, class string, args ...string) error {
	cmd := r.command(ctx, class, args...)
	cmd.Stdout, cmd.Stderr = r.writers()

	return r.run(cmd, class)
}

// Output executes the main class with args and returns its standard output.
func (r *runner) Output(ctx context.Context, class string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := r.command(ctx, class, args...)
	cmd.Stdout = &stdout
	_, cmd.Stderr = r.writers()

	if err := r.run(cmd, class); err != nil {
		return stdout.Bytes(), err
	}

	return stdout.Bytes(), nil
}

// Command returns the full command line used for the main class.
func (r *runner) Command(class string, args ...string) []string {
	return append([]string{r.binary, "-cp", r.classpath, class}, args...)
}

func (r *runner) command(ctx context.Context, class string, args ...string) *exec.Cmd {
	line := r.Command(class, args...)
	logger.JobLogger.With("entrypoint", class).Debugf("exec %s", strings.Join(line, " "))
	return exec.CommandContext(ctx, line[0], line[1:]...)
}

func (r *runner) writers() (io.Writer, io.Writer) {
	if r.hideOutput {
		return io.Discard, io.Discard
	}

	return r.stdout, r.stderr
}

func (r *runner) run(cmd *exec.Cmd, class string) error {
	log := logger.JobLogger.With("entrypoint", class)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			log.Errorf("exited with code %d", exitErr.ExitCode())
			return &ExitError{Class: class, Code: exitErr.ExitCode()}
		}

		log.Errorf("exec failed: %s", err.Error())
		return fmt.Errorf("exec %s: %w", class, err)
	}

	log.Infof("exited with code 0")
	return nil
}
