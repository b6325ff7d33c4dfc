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

package debuglog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Capture configures the standard logger at the given level for the rest of
// the test and returns a hook that records every entry logged after the
// call. The logger's previous level, hooks, and formatter are restored when
// the test finishes.
func Capture(tb testing.TB, level logrus.Level) *test.Hook {
	logger := logrus.StandardLogger()
	prevLevel, prevHooks, prevFormatter := logger.GetLevel(), logger.Hooks, logger.Formatter
	prevReportCaller := logger.ReportCaller
	Configure(Options{Level: level})
	hook := test.NewGlobal()
	tb.Cleanup(func() {
		logger.SetLevel(prevLevel)
		logger.ReplaceHooks(prevHooks)
		logger.SetFormatter(prevFormatter)
		logger.SetReportCaller(prevReportCaller)
	})
	return hook
}
