// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the thesis-analyzer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the thesis-analyzer CLI.
var rootCmd = &cobra.Command{
	Use:   "thesis-analyzer",
	Short: "Structure analysis for academic theses processed with GROBID",
	Long: `thesis-analyzer turns thesis PDFs into a normalized, semantically labeled
document model. GROBID extracts TEI/XML from each PDF; the analyzer derives
metadata, categorized sections, detected language, and the reference list,
then writes JSON and categorized XML outputs and indexes everything into a
searchable SQLite database.

Each stage is a subcommand: process (PDF to TEI), analyze (TEI to results),
and store (results to SQLite). status checks the GROBID service.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./thesis-analyzer.yaml or ~/.config/thesis-analyzer/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("thesis-analyzer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "thesis-analyzer"))
		}
	}

	viper.SetEnvPrefix("THESIS_ANALYZER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// grobidConfig assembles the GROBID client config: the resolved server URL
// plus the remaining settings from viper.
func grobidConfig(serverURL string) types.GrobidConfig {
	return types.GrobidConfig{
		HTTPConfig: types.HTTPConfig{
			UserAgent: "thesis-analyzer/" + version,
		},
		ServerURL:       serverURL,
		FulltextTimeout: viper.GetDuration("grobid.fulltext_timeout"),
		HeaderTimeout:   viper.GetDuration("grobid.header_timeout"),
		MaxRetries:      viper.GetInt("grobid.max_retries"),
	}
}

// analyzerConfig assembles the analyzer tunables from viper.
func analyzerConfig() types.AnalyzerConfig {
	return types.AnalyzerConfig{
		SimilarityThreshold: viper.GetFloat64("analyzer.similarity_threshold"),
		BodyWindow:          viper.GetInt("analyzer.body_window"),
		LanguageSampleWords: viper.GetInt("analyzer.language_sample_words"),
		LanguageMinHits:     viper.GetInt("analyzer.language_min_hits"),
		KeywordsFile:        viper.GetString("analyzer.keywords_file"),
	}
}

// storeConfig assembles the store config from viper.
func storeConfig() types.StoreConfig {
	return types.StoreConfig{
		DBPath:       viper.GetString("store.db_path"),
		ChunkSize:    viper.GetInt("store.chunk_size"),
		ChunkOverlap: viper.GetInt("store.chunk_overlap"),
		MaxResults:   viper.GetInt("store.max_results"),
	}
}

// stringSetting resolves a setting: an explicitly passed flag wins, then
// the config file / environment, then the flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// boolSetting resolves a boolean setting with the same precedence as
// stringSetting.
func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

// float64Setting resolves a float setting with the same precedence as
// stringSetting.
func float64Setting(cmd *cobra.Command, flag, key string) float64 {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetFloat64(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	v, _ := cmd.Flags().GetFloat64(flag)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
