// Copyright © 2025 SolForge Contributors
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"

	"github.com/briandowns/spinner"
)

type SpinnerLogger struct {
	Spinner  *spinner.Spinner
	logLevel LogLevel
}

func NewSpinnerLogger(spin *spinner.Spinner) *SpinnerLogger {
	spin.FinalMSG = "done"
	return &SpinnerLogger{
		Spinner: spin,
	}
}

func (l *SpinnerLogger) SetLogLevel(level LogLevel) {
	l.logLevel = level
}

// Messages replace the spinner suffix rather than scrolling, so the spinner
// line always shows the most recent step.
func (l *SpinnerLogger) suffix(level LogLevel, s string) {
	if l.logLevel <= level && l.Spinner != nil {
		l.Spinner.Suffix = fmt.Sprintf(" %s...", s)
	}
}

func (l *SpinnerLogger) Trace(s string) {
	l.suffix(Trace, s)
}

func (l *SpinnerLogger) Debug(s string) {
	l.suffix(Debug, s)
}

func (l *SpinnerLogger) Info(s string) {
	l.suffix(Info, s)
}

func (l *SpinnerLogger) Warn(s string) {
	l.suffix(Warn, s)
}

func (l *SpinnerLogger) Error(e error) {
	l.suffix(Error, fmt.Sprintf("Error: %s", e.Error()))
}
