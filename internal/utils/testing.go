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

package utils

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/sirupsen/logrus"
)

// TestHelper carries the mocked endpoints used by client and manager tests
type TestHelper struct {
	GenerationURL string
	DeploymentURL string
}

var logMutex sync.Mutex

var (
	GenerationEndpoint = "http://localhost:9010/v1"
	DeploymentEndpoint = "http://localhost:9020"
)

func StartMockServer(_ *testing.T) {
	httpmock.Activate()
}

// NewTestEndPoint provides the mock endpoints for testing
func NewTestEndPoint(_ *testing.T) *TestHelper {
	return &TestHelper{
		GenerationURL: GenerationEndpoint,
		DeploymentURL: DeploymentEndpoint,
	}
}

func StopMockServer(_ *testing.T) {
	httpmock.DeactivateAndReset()
}

// CaptureOutput redirects the standard output (and logrus) into a pipe until
// the returned restore function is called. Restoring puts the original output
// back and returns everything written while the capture was active.
func CaptureOutput() func() string {
	logMutex.Lock()
	originalOutput := os.Stdout // Save the original output

	// Create a pipe to capture the output
	reader, writer, _ := os.Pipe()
	os.Stdout = writer

	// Redirect logrus output to the same pipe
	logrus.SetOutput(writer)

	captured := make(chan string)
	go func() {
		buffer := &bytes.Buffer{}
		_, _ = io.Copy(buffer, reader)
		captured <- buffer.String()
	}()

	return func() string {
		_ = writer.Close()
		os.Stdout = originalOutput
		logrus.SetOutput(originalOutput)
		logMutex.Unlock()
		return <-captured
	}
}
