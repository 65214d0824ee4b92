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
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CoreLogFileName = "core.log"
	JobLogFileName  = "job.log"
)

// LogRotateConfig controls rotation of file loggers.
type LogRotateConfig struct {
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

type logInitMeta struct {
	fileName             string
	setSugaredLoggerFunc func(*zap.SugaredLogger)
}

// Init initializes the core and job loggers. With console set, logs go to
// stderr with the development encoder, otherwise to rotated JSON files in dir.
func Init(verbose, console bool, dir string, rotateConfig LogRotateConfig) error {
	if console {
		return createConsoleLogger(verbose)
	}

	var meta = []logInitMeta{
		{
			fileName:             CoreLogFileName,
			setSugaredLoggerFunc: SetCoreLogger,
		},
		{
			fileName:             JobLogFileName,
			setSugaredLoggerFunc: SetJobLogger,
		},
	}

	return createFileLogger(verbose, meta, dir, rotateConfig)
}

func createConsoleLogger(verbose bool) error {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	log, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	sugar := log.Sugar()
	SetCoreLogger(sugar)
	SetJobLogger(sugar)
	return nil
}

func createFileLogger(verbose bool, meta []logInitMeta, logDir string, rotateConfig LogRotateConfig) error {
	for _, m := range meta {
		log, err := CreateLogger(filepath.Join(logDir, m.fileName), verbose, rotateConfig)
		if err != nil {
			return err
		}

		m.setSugaredLoggerFunc(log.Sugar())
	}

	return nil
}

// CreateLogger returns a JSON logger writing to a lumberjack rotated file.
func CreateLogger(filePath string, verbose bool, rotateConfig LogRotateConfig) (*zap.Logger, error) {
	syncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    rotateConfig.MaxSize,
		MaxAge:     rotateConfig.MaxAge,
		MaxBackups: rotateConfig.MaxBackups,
		LocalTime:  true,
	})

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		syncer,
		level,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1)), nil
}
