package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thesis-analyzer/internal/pipeline"
	"github.com/pdiddy/thesis-analyzer/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Index analysis results in SQLite and query them",
	Long: `Store manages the SQLite database of analysis results: ingest loads a
batch JSON file into documents, sections, chunks, and references; search
runs full-text queries over the chunked section content; stats prints
aggregate counts.`,
}

var storeIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a batch analysis JSON file into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonFile := stringSetting(cmd, "json-file", "store.json_file")

		batch, err := pipeline.ReadBatchJSON(jsonFile)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		_, err = s.Ingest(cmd.Context(), batch, os.Stdout)
		return err
	},
}

var storeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over indexed section content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxResults, _ := cmd.Flags().GetInt("max-results")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.Search(cmd.Context(), args[0], maxResults)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		if len(results) == 0 {
			fmt.Println("no results")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s [%s] %s\n    %s\n", r.Filename, r.Category, r.Heading, snippet(r.Chunk))
		}
		return nil
	},
}

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print database counts and the section category distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("documents:  %d\n", stats.Documents)
		fmt.Printf("sections:   %d\n", stats.Sections)
		fmt.Printf("chunks:     %d\n", stats.Chunks)
		fmt.Printf("references: %d\n", stats.References)
		if len(stats.Categories) > 0 {
			fmt.Println("categories:")
			for _, cat := range sortedKeys(stats.Categories) {
				fmt.Printf("  %-28s %d\n", cat, stats.Categories[cat])
			}
		}
		return nil
	},
}

// openStore opens the configured database, preferring the command's --db
// flag over the config file.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg := storeConfig()
	if cmd.Flags().Changed("db") {
		cfg.DBPath, _ = cmd.Flags().GetString("db")
	} else if cfg.DBPath == "" {
		cfg.DBPath, _ = cmd.Flags().GetString("db")
	}
	return store.Open(cfg)
}

// snippet shortens chunk text for terminal output.
func snippet(s string) string {
	if len(s) > 160 {
		return s[:160] + "..."
	}
	return s
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	storeCmd.PersistentFlags().String("db", "output/thesis_database.db", "SQLite database file")

	storeIngestCmd.Flags().String("json-file", "output/thesis_analysis.json", "batch analysis JSON file to ingest")
	storeSearchCmd.Flags().Int("max-results", 20, "maximum number of search results")
	storeSearchCmd.Flags().Bool("json", false, "output results as JSON")

	storeCmd.AddCommand(storeIngestCmd, storeSearchCmd, storeStatsCmd)
	rootCmd.AddCommand(storeCmd)
}
