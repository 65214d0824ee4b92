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
)

// Batch is the experiment document read by the Auto-WEKA experiment constructor.
type Batch struct {
	XMLName    xml.Name            `xml:"experimentBatch"`
	Experiment ExperimentComponent `xml:"experimentComponent"`
	Datasets   []DatasetComponent  `xml:"datasetComponent"`
}

// ExperimentComponent describes the search. Field order is the element order.
type ExperimentComponent struct {
	Name                      string   `xml:"name"`
	ResultMetric              string   `xml:"resultMetric"`
	ExperimentConstructor     string   `xml:"experimentConstructor"`
	ExperimentConstructorArgs []string `xml:"experimentConstructorArgs"`
	ExtraProps                string   `xml:"extraProps"`
	InstanceGenerator         string   `xml:"instanceGenerator"`
	InstanceGeneratorArgs     string   `xml:"instanceGeneratorArgs"`
	TunerTimeout              int      `xml:"tunerTimeout"`
	TrainTimeout              int      `xml:"trainTimeout"`
	AttributeSelection        bool     `xml:"attributeSelection"`
	AttributeSelectionTimeout *int     `xml:"attributeSelectionTimeout,omitempty"`
	AllowedClassifiers        []string `xml:"allowedClassifiers"`
	Memory                    string   `xml:"memory"`
}

// DatasetComponent describes one dataset.
type DatasetComponent struct {
	TrainArff string `xml:"trainArff"`
	TestArff  string `xml:"testArff"`
	Name      string `xml:"name"`
}

// Batch builds the document of the experiment without mutating it.
func (e *Experiment) Batch() (*Batch, error) {
	c, err := e.config.OptimizationMethod.constructor(e.env.BaseFolder, e.env.SMACExecutable)
	if err != nil {
		return nil, err
	}

	generator := e.config.InstanceGenerator
	if generator == nil {
		generator = DefaultInstanceGenerator()
	}

	b := &Batch{
		Experiment: ExperimentComponent{
			Name:                      e.name,
			ResultMetric:              string(e.config.ResultMetric),
			ExperimentConstructor:     c.class,
			ExperimentConstructorArgs: append([]string(nil), c.args...),
			ExtraProps:                c.extraProps,
			InstanceGenerator:         generator.Name(),
			InstanceGeneratorArgs:     generator.Args(),
			TunerTimeout:              e.config.TunerTimeout,
			TrainTimeout:              e.config.TrainTimeout,
			AttributeSelection:        e.config.AttributeSelection,
			AllowedClassifiers:        e.Classifiers(),
			Memory:                    e.config.Memory,
		},
	}

	if e.config.AttributeSelection {
		timeout := e.config.AttributeSelectionTimeout
		b.Experiment.AttributeSelectionTimeout = &timeout
	}

	for _, d := range e.datasets {
		b.Datasets = append(b.Datasets, DatasetComponent{
			TrainArff: d.TrainFile,
			TestArff:  d.TestArff(),
			Name:      d.Name,
		})
	}

	return b, nil
}

// Document returns the XML document written for the experiment constructor.
func (e *Experiment) Document() ([]byte, error) {
	b, err := e.Batch()
	if err != nil {
		return nil, err
	}

	data, err := xml.Marshal(b)
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), data...), nil
}

// String returns the indented document.
func (e *Experiment) String() string {
	b, err := e.Batch()
	if err != nil {
		return err.Error()
	}

	data, err := xml.MarshalIndent(b, "", "  ")
	if err != nil {
		return err.Error()
	}

	return xml.Header + string(data) + "\n"
}
