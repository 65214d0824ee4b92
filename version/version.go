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

package version

import (
	"fmt"
	"runtime"
)

// Values overridden at build time with -ldflags "-X d7y.io/autoweka/version.GitVersion=...".
var (
	Major      = "0"
	Minor      = "1"
	GitVersion = "v0.1.0"
	GitCommit  = "unknown"
	BuildTime  = "unknown"
	GoVersion  = runtime.Version()
	Platform   = runtime.GOOS + "/" + runtime.GOARCH
)

// Version returns the version details as a multi-line string.
func Version() string {
	return fmt.Sprintf(`Major: %s, Minor: %s, GitVersion: %s, GitCommit: %s, Platform: %s, BuildTime: %s, GoVersion: %s`,
		Major, Minor, GitVersion, GitCommit, Platform, BuildTime, GoVersion)
}
