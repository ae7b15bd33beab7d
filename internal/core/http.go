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

package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/solforge/solforge-cli/internal/log"
)

var (
	// ErrRequestFailed covers transport failures and non-2xx responses
	ErrRequestFailed = errors.New("request failed")
	// ErrMalformedResponse covers replies that do not match the expected shape
	ErrMalformedResponse = errors.New("malformed response")
	// ErrProviderFailure covers replies whose own status field reports failure
	ErrProviderFailure = errors.New("provider reported failure")
)

// PostJSON sends one JSON POST with bearer auth and decodes the reply into
// result. A single attempt, no retry; the timeout is whatever the default
// transport imposes.
func PostJSON(ctx context.Context, url, token string, body, result interface{}) error {
	if log.VerbosityFromContext(ctx) {
		log.LoggerFromContext(ctx).Debug(fmt.Sprintf("POST %s", url))
	}

	requestBody, err := json.Marshal(&body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err.Error())
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s [%d] %s", ErrRequestFailed, url, resp.StatusCode, responseBody)
	}

	if err := json.Unmarshal(responseBody, result); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err.Error())
	}
	return nil
}
