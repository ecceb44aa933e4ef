package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thesis-analyzer/internal/pipeline"
	"github.com/pdiddy/thesis-analyzer/internal/tei"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze TEI/XML files into categorized results",
	Long: `Analyze reads every TEI/XML file in the XML directory and derives the
document model for each: metadata, sections labeled with academic
categories, per-section and overall language, and the reference list.
Results are written as one batch JSON file and, optionally, one
categorized XML tree per document. Malformed files produce a flagged
result instead of aborting the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		xmlDir := stringSetting(cmd, "xml-dir", "pipeline.xml_dir")
		outDir := stringSetting(cmd, "out-dir", "pipeline.out_dir")
		structured := boolSetting(cmd, "structured", "pipeline.structured")

		cfg := analyzerConfig()
		cfg.SimilarityThreshold = float64Setting(cmd, "similarity-threshold", "analyzer.similarity_threshold")

		analyzer, err := tei.NewAnalyzer(cfg)
		if err != nil {
			return err
		}

		batch, err := analyzer.AnalyzeDirectory(xmlDir, os.Stdout)
		if err != nil {
			return err
		}

		jsonPath := filepath.Join(outDir, "thesis_analysis.json")
		if err := pipeline.WriteBatchJSON(batch, jsonPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)

		if structured {
			if err := pipeline.WriteStructuredXML(batch, outDir); err != nil {
				return err
			}
			fmt.Printf("wrote structured XML under %s\n", filepath.Join(outDir, "structured_xml"))
		}

		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("xml-dir", "output/grobid_xml", "directory holding TEI XML files")
	analyzeCmd.Flags().String("out-dir", "output", "base directory for analysis outputs")
	analyzeCmd.Flags().Bool("structured", true, "write per-file categorized XML")
	analyzeCmd.Flags().Float64("similarity-threshold", 0.6, "minimum similarity for heading-based categorization")

	rootCmd.AddCommand(analyzeCmd)
}
