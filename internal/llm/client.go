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
	"fmt"
	"net/url"
	"strings"

	"github.com/solforge/solforge-cli/internal/core"
	"github.com/solforge/solforge-cli/internal/prompt"
)

// FallbackExplanation is used when the model's reply carries no explanation
// marker
const FallbackExplanation = "No explanation provided."

type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionChoice struct {
	Message *chatMessage `json:"message"`
}

type completionResponse struct {
	Choices []*completionChoice `json:"choices"`
}

// GenerationResult is the parsed completion: the contract source and the
// prose explanation that followed the marker
type GenerationResult struct {
	SourceCode  string
	Explanation string
}

func NewClient(baseURL, apiKey, model string, maxTokens int, temperature float64) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Generate sends one chat completion request and parses the first choice into
// source code and explanation. A single attempt, no streaming.
func (c *Client) Generate(ctx context.Context, userPrompt string) (*GenerationResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u = u.JoinPath("chat", "completions")

	requestBody := &completionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.SystemInstruction},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	var completion completionResponse
	if err := core.PostJSON(ctx, u.String(), c.apiKey, requestBody, &completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message == nil {
		return nil, fmt.Errorf("%w: completion reply contained no choices", core.ErrMalformedResponse)
	}

	code, explanation := splitCompletion(completion.Choices[0].Message.Content)
	return &GenerationResult{SourceCode: code, Explanation: explanation}, nil
}

// splitCompletion separates the reply text on the first explanation marker.
// With no marker the whole reply is the code and the explanation falls back
// to a fixed sentence.
func splitCompletion(text string) (code, explanation string) {
	before, after, found := strings.Cut(text, prompt.ExplanationMarker)
	if !found {
		return strings.TrimSpace(text), FallbackExplanation
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
