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

package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// CoreLogger logs experiment lifecycle events.
	CoreLogger *zap.SugaredLogger

	// JobLogger logs external process invocations.
	JobLogger *zap.SugaredLogger

	coreLogLevelEnabler zapcore.LevelEnabler
)

func init() {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	log, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1))
	if err == nil {
		sugar := log.Sugar()
		SetCoreLogger(sugar)
		SetJobLogger(sugar)
	}
}

func SetCoreLogger(log *zap.SugaredLogger) {
	CoreLogger = log
	coreLogLevelEnabler = log.Desugar().Core()
}

func SetJobLogger(log *zap.SugaredLogger) {
	JobLogger = log
}

type SugaredLoggerOnWith struct {
	withArgs []any
}

func WithExperiment(name string) *SugaredLoggerOnWith {
	return &SugaredLoggerOnWith{
		withArgs: []any{"experiment", name},
	}
}

func WithExperimentAndDataset(name, dataset string) *SugaredLoggerOnWith {
	return &SugaredLoggerOnWith{
		withArgs: []any{"experiment", name, "dataset", dataset},
	}
}

func (log *SugaredLoggerOnWith) With(args ...any) *SugaredLoggerOnWith {
	args = append(args, log.withArgs...)
	return &SugaredLoggerOnWith{
		withArgs: args,
	}
}

func (log *SugaredLoggerOnWith) Infof(template string, args ...any) {
	if !coreLogLevelEnabler.Enabled(zap.InfoLevel) {
		return
	}
	CoreLogger.Infow(fmt.Sprintf(template, args...), log.withArgs...)
}

func (log *SugaredLoggerOnWith) Warnf(template string, args ...any) {
	if !coreLogLevelEnabler.Enabled(zap.WarnLevel) {
		return
	}
	CoreLogger.Warnw(fmt.Sprintf(template, args...), log.withArgs...)
}

func (log *SugaredLoggerOnWith) Errorf(template string, args ...any) {
	CoreLogger.Errorw(fmt.Sprintf(template, args...), log.withArgs...)
}

func (log *SugaredLoggerOnWith) Error(args ...any) {
	CoreLogger.Errorw(fmt.Sprint(args...), log.withArgs...)
}

func Infof(template string, args ...any) {
	CoreLogger.Infof(template, args...)
}

func Warnf(template string, args ...any) {
	CoreLogger.Warnf(template, args...)
}

func Error(args ...any) {
	CoreLogger.Error(args...)
}

func Debugf(template string, args ...any) {
	CoreLogger.Debugf(template, args...)
}
