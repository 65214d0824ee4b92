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

package java

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJava writes a shell script standing in for the java launcher.
func fakeJava(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "java")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestRunner_Command(t *testing.T) {
	assert := assert.New(t)
	r := New("autoweka.jar")
	assert.Equal([]string{"java", "-cp", "autoweka.jar", "foo.Bar", "baz", "1"}, r.Command("foo.Bar", "baz", "1"))

	r = New("autoweka.jar", WithBinary("/opt/java/bin/java"))
	assert.Equal([]string{"/opt/java/bin/java", "-cp", "autoweka.jar", "foo.Bar"}, r.Command("foo.Bar"))
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		hide   bool
		expect func(t *testing.T, err error, stdout, stderr string)
	}{
		{
			name: "exit zero",
			body: `echo "$@"; echo oops 1>&2`,
			expect: func(t *testing.T, err error, stdout, stderr string) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("-cp autoweka.jar foo.Bar baz\n", stdout)
				assert.Equal("oops\n", stderr)
			},
		},
		{
			name: "hide output",
			body: `echo "$@"; echo oops 1>&2`,
			hide: true,
			expect: func(t *testing.T, err error, stdout, stderr string) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Empty(stdout)
				assert.Empty(stderr)
			},
		},
		{
			name: "exit non zero",
			body: "exit 3",
			expect: func(t *testing.T, err error, stdout, stderr string) {
				assert := assert.New(t)
				var exitErr *ExitError
				assert.True(errors.As(err, &exitErr))
				assert.Equal(3, exitErr.Code)
				assert.Equal("foo.Bar", exitErr.Class)
				assert.EqualError(err, "java class foo.Bar exited with code 3")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			r := New("autoweka.jar", WithBinary(fakeJava(t, tc.body)), WithOutput(&stdout, &stderr), WithHideOutput(tc.hide))
			err := r.Run(context.Background(), "foo.Bar", "baz")
			tc.expect(t, err, stdout.String(), stderr.String())
		})
	}
}

func TestRunner_Output(t *testing.T) {
	assert := assert.New(t)
	r := New("autoweka.jar", WithBinary(fakeJava(t, `echo "Best point seed3"`)), WithHideOutput(true))
	out, err := r.Output(context.Background(), "foo.Bar")
	assert.NoError(err)
	assert.Equal("Best point seed3\n", string(out))

	r = New("autoweka.jar", WithBinary(fakeJava(t, `echo partial; exit 1`)), WithHideOutput(true))
	out, err = r.Output(context.Background(), "foo.Bar")
	assert.Error(err)
	assert.Equal("partial\n", string(out))
}

func TestRunner_MissingBinary(t *testing.T) {
	assert := assert.New(t)
	r := New("autoweka.jar", WithBinary(filepath.Join(t.TempDir(), "missing")))
	err := r.Run(context.Background(), "foo.Bar")
	assert.Error(err)

	var exitErr *ExitError
	assert.False(errors.As(err, &exitErr))
}

func TestRunner_CanceledContext(t *testing.T) {
	assert := assert.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New("autoweka.jar", WithBinary(fakeJava(t, "exit 0")), WithHideOutput(true))
	assert.Error(r.Run(ctx, "foo.Bar"))
}
