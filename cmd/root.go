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

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/solforge/solforge-cli/internal/config"
	"github.com/solforge/solforge-cli/internal/constants"
	"github.com/solforge/solforge-cli/internal/log"
)

// ExecutableName is used in help and error text
var ExecutableName = "solforge"

var cfgFile string
var verbose bool
var ansiOutput string

var fancyFeatures = false
var logger log.Logger = &log.StdoutLogger{
	LogLevel: log.Debug,
}

func GetSolForgeAsciiArt() string {
	s := ""
	s += "\u001b[33m   _____       ________                   \u001b[0m\n"       // yellow
	s += "\u001b[33m  / ___/____  / / ____/___  _________ ____\u001b[0m\n"       // yellow
	s += "\u001b[31m  \\__ \\/ __ \\/ / /_  / __ \\/ ___/ __ `/ _ \\\u001b[0m\n" // red
	s += "\u001b[31m ___/ / /_/ / / __/ / /_/ / /  / /_/ /  __/\u001b[0m\n"      // red
	s += "\u001b[35m/____/\\____/_/_/    \\____/_/   \\__, /\\___/ \u001b[0m\n"  // magenta
	s += "\u001b[35m                              /____/       \u001b[0m\n"      // magenta

	return s
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   ExecutableName,
	Short: "SolForge CLI generates Solidity contracts with an LLM and deploys them",
	Long: GetSolForgeAsciiArt() + `
SolForge CLI is a developer tool that turns a description of a smart contract
into deployable Solidity source using an LLM completion endpoint, and can then
submit that source to a remote compile-and-deploy provider.

To get started run: solforge init
	`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is $HOME/%s.yml)", constants.ConfigFileName))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose log output")
	rootCmd.PersistentFlags().StringVar(&ansiOutput, "ansi", "auto", "control when to print ANSI control characters (\"always\"|\"never\"|\"auto\")")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if ansiOutput == "always" || (ansiOutput == "auto" && isatty.IsTerminal(os.Stdout.Fd())) {
		fancyFeatures = true
	}

	config.SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".solforge-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(constants.ConfigFileName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
