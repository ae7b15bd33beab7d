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

package constants

// ConfigFileName is the name of the config file searched for in the user's
// home directory, without extension
var ConfigFileName = ".solforge-cli"

// EnvPrefix scopes the environment variables read as config overrides,
// e.g. SOLFORGE_GENERATION_APIKEY
var EnvPrefix = "SOLFORGE"
