// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package debuglog configures Logrus for binaries and test suites that embed
// the query core. The library packages never call it themselves; they only
// log through the standard Logrus logger.
package debuglog

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options control the logger's behavior. The zero value selects the
// defaults.
type Options struct {
	// If true, level names and field keys are highlighted with ANSI colors.
	// Setting the environment variable "CLICOLOR_FORCE" to "1" has the same
	// effect.
	ForceColors bool

	// The minimum level to log at. The zero value is logrus.PanicLevel, which
	// is treated as unset and becomes logrus.InfoLevel.
	Level logrus.Level

	// If not nil, log lines are written here instead of to the logger's
	// current output.
	Output io.Writer

	// The logger to set up. Nil selects logrus.StandardLogger().
	Logger *logrus.Logger
}

// Configure sets up the logger described by opts: entries carry their caller
// as a path relative to the module root, timestamps are in UTC with
// microseconds, and any previously installed hooks are removed. It may be
// called more than once, but not concurrently.
func Configure(opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	level := opts.Level
	if level == logrus.PanicLevel {
		level = logrus.InfoLevel
	}
	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	}
	logger.SetLevel(level)
	logger.SetReportCaller(true)
	logger.ReplaceHooks(make(logrus.LevelHooks))
	logger.AddHook(utcHook{})
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:             true,
		TimestampFormat:           "2006-01-02 15:04:05.000000 MST",
		ForceColors:               opts.ForceColors,
		EnvironmentOverrideColors: true,
		CallerPrettyfier:          callerFile,
	})
	logger.WithFields(logrus.Fields{
		"forceColors": opts.ForceColors,
		"logLevel":    level.String(),
	}).Info("Initialized Logrus")
}

type utcHook struct{}

func (utcHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (utcHook) Fire(entry *logrus.Entry) error {
	entry.Time = entry.Time.UTC()
	return nil
}

// moduleRoot is the directory prefix stripped from caller paths. It's empty
// if this file can't locate itself, in which case paths are left whole.
var moduleRoot = findModuleRoot()

func findModuleRoot() string {
	const localPath = "util/debuglog/setup.go"
	_, file, _, ok := runtime.Caller(0)
	if !ok || !strings.HasSuffix(file, localPath) {
		return ""
	}
	return strings.TrimSuffix(file, localPath)
}

// relativePath returns file relative to the module root, if it's inside it.
func relativePath(file string) string {
	if moduleRoot == "" {
		return file
	}
	return strings.TrimPrefix(file, moduleRoot)
}

// callerFile is a logrus CallerPrettyfier. It reports the caller as a
// "file:line" pair and leaves out the function name.
func callerFile(frame *runtime.Frame) (function string, file string) {
	return "", fmt.Sprintf("%s:%d", relativePath(frame.File), frame.Line)
}
