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

package arff

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sjwhitworth/golearn/base"
)

// ReadCSV loads a CSV file into a Dataset. The last column is the class,
// every other column must be numeric.
func ReadCSV(path string, hasHeaders bool) (*Dataset, error) {
	instances, err := base.ParseCSVToInstances(path, hasHeaders)
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}

	attrs := instances.AllAttributes()
	if len(attrs) < 2 {
		return nil, fmt.Errorf("csv %s needs at least one feature and a class column", path)
	}

	classAttr := attrs[len(attrs)-1]
	if classAttrs := instances.AllClassAttributes(); len(classAttrs) == 1 {
		classAttr = classAttrs[0]
	}

	var (
		featureAttrs []base.Attribute
		featureNames []string
	)
	for _, attr := range attrs {
		if attr.Equals(classAttr) {
			continue
		}

		if _, ok := attr.(*base.FloatAttribute); !ok {
			return nil, fmt.Errorf("csv %s column %s is not numeric", path, attr.GetName())
		}

		featureAttrs = append(featureAttrs, attr)
		featureNames = append(featureNames, attr.GetName())
	}

	featureSpecs := base.ResolveAttributes(instances, featureAttrs)
	classSpec, err := instances.GetAttribute(classAttr)
	if err != nil {
		return nil, err
	}

	_, rows := instances.Size()
	d := &Dataset{
		Relation: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Features: make([][]float64, rows),
		Labels:   make([]string, rows),
	}

	if hasHeaders {
		d.FeatureNames = featureNames
	}

	for i := 0; i < rows; i++ {
		row := make([]float64, len(featureSpecs))
		for j, spec := range featureSpecs {
			row[j] = base.UnpackBytesToFloat(instances.Get(spec, i))
		}

		d.Features[i] = row
		d.Labels[i] = classAttr.GetStringFromSysVal(instances.Get(classSpec, i))
	}

	return d, nil
}
