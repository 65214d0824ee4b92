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

package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"d7y.io/autoweka/experiment"
	"d7y.io/autoweka/experiment/config"
)

func TestPrintReport(t *testing.T) {
	assert := assert.New(t)
	report := &experiment.RunReport{
		ID: "foo",
		Results: []experiment.RunResult{
			{Dataset: "d1", Seed: 0, Cost: 2 * time.Second},
			{Dataset: "d1", Seed: 1, Err: errors.New("exit status 1"), Cost: time.Second},
		},
		Merged: []string{"d1"},
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	assert.Equal("run foo\n"+
		"  dataset d1 seed 0 succeeded (2s)\n"+
		"  dataset d1 seed 1 failed: exit status 1 (1s)\n"+
		"  seed cost mean 1.5s max 2s\n"+
		"  dataset d1 trajectories merged\n", buf.String())
}

func TestInitAwpath(t *testing.T) {
	assert := assert.New(t)
	workHome := t.TempDir()

	c := config.New()
	c.Workspace.WorkHome = workHome
	c.Workspace.DataDir = filepath.Join(workHome, "arff")
	d, err := initAwpath(c)
	assert.NoError(err)
	assert.Equal(workHome, d.WorkHome())
	assert.Equal(filepath.Join(workHome, "experiments"), d.ExperimentDir())
	assert.Equal(workHome, d.ConfigDir())
	assert.Equal(filepath.Join(workHome, "arff"), d.DataDir())
	assert.Equal(filepath.Join(workHome, "logs"), d.LogDir())
	assert.DirExists(d.DataDir())
}

func TestPrintReportWithoutResults(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	printReport(&buf, &experiment.RunReport{ID: "bar"})
	assert.Equal("run bar\n", buf.String())
}
