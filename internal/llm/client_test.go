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

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/solforge/solforge-cli/internal/core"
	"github.com/solforge/solforge-cli/internal/utils"
)

func newTestClient(t *testing.T) *Client {
	return NewClient(utils.NewTestEndPoint(t).GenerationURL, "test-key", "gpt-4", 2000, 0.2)
}

func completionJSON(content string) string {
	reply, _ := json.Marshal(&completionResponse{
		Choices: []*completionChoice{
			{Message: &chatMessage{Role: "assistant", Content: content}},
		},
	})
	return string(reply)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		Name                string
		StatusCode          int
		ApiResponse         string
		ExpectedCode        string
		ExpectedExplanation string
		ExpectedErr         error
	}{
		{
			Name:                "TestGenerateWithMarker-1",
			StatusCode:          200,
			ApiResponse:         completionJSON("pragma solidity ^0.8.19; contract Foo {} EXPLANATION: A simple ERC721."),
			ExpectedCode:        "pragma solidity ^0.8.19; contract Foo {}",
			ExpectedExplanation: "A simple ERC721.",
		},
		{
			Name:                "TestGenerateWithoutMarker-2",
			StatusCode:          200,
			ApiResponse:         completionJSON("  contract Bare {}  "),
			ExpectedCode:        "contract Bare {}",
			ExpectedExplanation: FallbackExplanation,
		},
		{
			Name:        "TestGenerateNoChoices-3",
			StatusCode:  200,
			ApiResponse: `{"choices":[]}`,
			ExpectedErr: core.ErrMalformedResponse,
		},
		{
			Name:        "TestGenerateMissingMessage-4",
			StatusCode:  200,
			ApiResponse: `{"choices":[{}]}`,
			ExpectedErr: core.ErrMalformedResponse,
		},
		{
			Name:        "TestGenerateHTTPError-5",
			StatusCode:  500,
			ApiResponse: `{"error":"overloaded"}`,
			ExpectedErr: core.ErrRequestFailed,
		},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			utils.StartMockServer(t)
			defer utils.StopMockServer(t)
			httpmock.RegisterResponder("POST", utils.GenerationEndpoint+"/chat/completions",
				httpmock.NewStringResponder(tc.StatusCode, tc.ApiResponse))

			client := newTestClient(t)
			result, err := client.Generate(context.Background(), "write a contract")

			if tc.ExpectedErr != nil {
				assert.ErrorIs(t, err, tc.ExpectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.ExpectedCode, result.SourceCode)
			assert.Equal(t, tc.ExpectedExplanation, result.Explanation)
		})
	}
}

func TestGenerateSendsFixedSamplingParameters(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)

	var received completionRequest
	httpmock.RegisterResponder("POST", utils.GenerationEndpoint+"/chat/completions",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
				return nil, err
			}
			assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))
			return httpmock.NewStringResponse(200, completionJSON("contract A {}")), nil
		})

	client := newTestClient(t)
	_, err := client.Generate(context.Background(), "write a contract")

	assert.NoError(t, err)
	assert.Equal(t, "gpt-4", received.Model)
	assert.Equal(t, 2000, received.MaxTokens)
	assert.Equal(t, 0.2, received.Temperature)
	assert.Len(t, received.Messages, 2)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "write a contract", received.Messages[1].Content)
}

func TestSplitCompletion(t *testing.T) {
	code, explanation := splitCompletion("CODE... EXPLANATION: foo")
	assert.Equal(t, "CODE...", code)
	assert.Equal(t, "foo", explanation)

	code, explanation = splitCompletion("just code, no marker")
	assert.Equal(t, "just code, no marker", code)
	assert.Equal(t, FallbackExplanation, explanation)
}
