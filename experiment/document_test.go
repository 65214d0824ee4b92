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

package experiment

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentExperiment(t *testing.T, options ...Option) (*Experiment, *Env) {
	t.Helper()
	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	env := newTestEnv(t, ctl)
	e, err := New("Exp1", env.Env, options...)
	require.NoError(t, err)

	trainFile := filepath.Join(t.TempDir(), "d1_train.arff")
	require.NoError(t, os.WriteFile(trainFile, []byte("@RELATION d1\n"), 0644))
	require.NoError(t, e.SetDatasetFiles(trainFile, "", "d1"))
	return e, env.Env
}

func TestExperiment_Document(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		mock    func(t *testing.T, e *Experiment)
		expect  func(t *testing.T, e *Experiment, env *Env, b *Batch, document string)
	}{
		{
			name: "SMAC experiment with defaults",
			mock: func(t *testing.T, e *Experiment) {},
			expect: func(t *testing.T, e *Experiment, env *Env, b *Batch, document string) {
				assert := assert.New(t)
				assert.True(strings.HasPrefix(document, xml.Header+"<experimentBatch><experimentComponent><name>Exp1</name>"))
				assert.Equal("errorRate", b.Experiment.ResultMetric)
				assert.Equal("autoweka.smac.SMACExperimentConstructor", b.Experiment.ExperimentConstructor)
				assert.Equal([]string{"-experimentpath", env.BaseFolder, "-propertyoverride", "smacexecutable=/opt/smac/smac"}, b.Experiment.ExperimentConstructorArgs)
				assert.Equal(SMACExtraProps, b.Experiment.ExtraProps)
				assert.Equal("autoweka.instancegenerators.Default", b.Experiment.InstanceGenerator)
				assert.Empty(b.Experiment.InstanceGeneratorArgs)
				assert.Equal(180, b.Experiment.TunerTimeout)
				assert.Equal(120, b.Experiment.TrainTimeout)
				assert.True(b.Experiment.AttributeSelection)
				assert.NotNil(b.Experiment.AttributeSelectionTimeout)
				assert.Equal(100, *b.Experiment.AttributeSelectionTimeout)
				assert.Empty(b.Experiment.AllowedClassifiers)
				assert.Equal("3000m", b.Experiment.Memory)

				assert.Len(b.Datasets, 1)
				assert.Equal("d1", b.Datasets[0].Name)
				assert.Equal(b.Datasets[0].TrainArff, b.Datasets[0].TestArff)
				assert.Contains(document, "<attributeSelectionTimeout>100</attributeSelectionTimeout>")
				assert.NotContains(document, "<allowedClassifiers>")
			},
		},
		{
			name: "TPE experiment without attribute selection",
			options: []Option{
				WithOptimizationMethod(OptimizationMethodTPE),
				WithAttributeSelection(false),
			},
			mock: func(t *testing.T, e *Experiment) {},
			expect: func(t *testing.T, e *Experiment, env *Env, b *Batch, document string) {
				assert := assert.New(t)
				assert.Equal("autoweka.tpe.TPEExperimentConstructor", b.Experiment.ExperimentConstructor)
				assert.Equal([]string{"-experimentpath", env.BaseFolder, "-propertyoverride", TPEPropertyOverride}, b.Experiment.ExperimentConstructorArgs)
				assert.Empty(b.Experiment.ExtraProps)
				assert.False(b.Experiment.AttributeSelection)
				assert.Nil(b.Experiment.AttributeSelectionTimeout)
				assert.Contains(document, "<attributeSelection>false</attributeSelection>")
				assert.NotContains(document, "attributeSelectionTimeout")
			},
		},
		{
			name: "allowed classifiers and instance generator",
			options: []Option{
				WithInstanceGenerator(&CrossValidation{seed: 1, numFolds: 5}),
			},
			mock: func(t *testing.T, e *Experiment) {
				require.NoError(t, e.AddClassifier("weka.classifiers.trees.J48"))
				require.NoError(t, e.AddClassifier("weka.classifiers.functions.Logistic"))
			},
			expect: func(t *testing.T, e *Experiment, env *Env, b *Batch, document string) {
				assert := assert.New(t)
				assert.Equal([]string{"weka.classifiers.trees.J48", "weka.classifiers.functions.Logistic"}, b.Experiment.AllowedClassifiers)
				assert.Equal("autoweka.instancegenerators.CrossValidation", b.Experiment.InstanceGenerator)
				assert.Equal("seed=1:numFolds=5", b.Experiment.InstanceGeneratorArgs)
				assert.Contains(document, "<allowedClassifiers>weka.classifiers.trees.J48</allowedClassifiers><allowedClassifiers>weka.classifiers.functions.Logistic</allowedClassifiers>")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, env := newDocumentExperiment(t, tc.options...)
			tc.mock(t, e)

			b, err := e.Batch()
			require.NoError(t, err)
			document, err := e.Document()
			require.NoError(t, err)
			tc.expect(t, e, env, b, string(document))
		})
	}
}

func TestExperiment_DocumentElementOrder(t *testing.T) {
	assert := assert.New(t)
	e, _ := newDocumentExperiment(t)

	document, err := e.Document()
	assert.NoError(err)

	elements := []string{
		"<experimentBatch>",
		"<experimentComponent>",
		"<name>",
		"<resultMetric>",
		"<experimentConstructor>",
		"<experimentConstructorArgs>",
		"<extraProps>",
		"<instanceGenerator>",
		"<instanceGeneratorArgs>",
		"<tunerTimeout>",
		"<trainTimeout>",
		"<attributeSelection>",
		"<attributeSelectionTimeout>",
		"<memory>",
		"</experimentComponent>",
		"<datasetComponent>",
		"<trainArff>",
		"<testArff>",
		"<name>d1</name>",
		"</datasetComponent>",
		"</experimentBatch>",
	}

	last := -1
	for _, element := range elements {
		i := strings.Index(string(document), element)
		assert.Greater(i, last, element)
		last = i
	}
}

func TestExperiment_DocumentDeterministic(t *testing.T) {
	assert := assert.New(t)
	e, _ := newDocumentExperiment(t)

	first, err := e.Document()
	assert.NoError(err)
	second, err := e.Document()
	assert.NoError(err)
	assert.Equal(first, second)

	var b Batch
	assert.NoError(xml.Unmarshal(first[len(xml.Header):], &b))
	assert.Equal("Exp1", b.Experiment.Name)
	assert.True(filepath.IsAbs(b.Datasets[0].TrainArff))

	assert.True(strings.HasPrefix(e.String(), xml.Header+"<experimentBatch>\n  <experimentComponent>"))
}
