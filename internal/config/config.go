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

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// GenerationConfig configures the completion endpoint used to synthesize
// contract source
type GenerationConfig struct {
	BaseURL     string  `mapstructure:"baseURL" yaml:"baseURL"`
	APIKey      string  `mapstructure:"apiKey" yaml:"apiKey"`
	Model       string  `mapstructure:"model" yaml:"model"`
	MaxTokens   int     `mapstructure:"maxTokens" yaml:"maxTokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// DeploymentConfig configures the compile-and-deploy provider
type DeploymentConfig struct {
	BaseURL         string `mapstructure:"baseURL" yaml:"baseURL"`
	APIKey          string `mapstructure:"apiKey" yaml:"apiKey"`
	CompilerVersion string `mapstructure:"compilerVersion" yaml:"compilerVersion"`
	Chain           string `mapstructure:"chain" yaml:"chain"`
}

type Config struct {
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation"`
	Deployment DeploymentConfig `mapstructure:"deployment" yaml:"deployment"`
}

// SetDefaults registers every config default with viper. Called once before
// the config file is read.
func SetDefaults() {
	viper.SetDefault("generation.baseURL", "https://api.openai.com/v1")
	viper.SetDefault("generation.apiKey", "")
	viper.SetDefault("generation.model", "gpt-4")
	viper.SetDefault("generation.maxTokens", 2000)
	viper.SetDefault("generation.temperature", 0.2)
	viper.SetDefault("deployment.baseURL", "")
	viper.SetDefault("deployment.apiKey", "")
	viper.SetDefault("deployment.compilerVersion", "0.8.19")
	viper.SetDefault("deployment.chain", "sepolia")
}

// Load resolves the effective configuration from viper, after the config
// file and environment have been read in
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateGeneration checks the fields the generate flow cannot run without
func (c *Config) ValidateGeneration() error {
	if c.Generation.APIKey == "" {
		return fmt.Errorf("no generation API key configured. set generation.apiKey in the config file or SOLFORGE_GENERATION_APIKEY in the environment")
	}
	return nil
}

// ValidateDeployment checks the fields the deploy flow cannot run without
func (c *Config) ValidateDeployment() error {
	if c.Deployment.BaseURL == "" {
		return fmt.Errorf("no deployment provider URL configured. set deployment.baseURL in the config file or SOLFORGE_DEPLOYMENT_BASEURL in the environment")
	}
	if c.Deployment.APIKey == "" {
		return fmt.Errorf("no deployment API key configured. set deployment.apiKey in the config file or SOLFORGE_DEPLOYMENT_APIKEY in the environment")
	}
	return nil
}
