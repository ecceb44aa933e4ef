package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thesis-analyzer/internal/grobid"
	"github.com/pdiddy/thesis-analyzer/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process thesis PDFs into TEI/XML via GROBID",
	Long: `Process discovers thesis PDFs (Tesis_*.pdf, falling back to any PDF) and
submits each to the GROBID service for full-text and header extraction,
writing the validated TEI/XML files to the output directory. A failure on
one PDF never aborts the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL := stringSetting(cmd, "grobid-url", "grobid.server_url")
		pdfDir := stringSetting(cmd, "pdf-dir", "pipeline.pdf_dir")
		xmlDir := stringSetting(cmd, "xml-dir", "pipeline.xml_dir")

		client := grobid.NewClient(grobidConfig(serverURL))
		if err := client.IsAlive(cmd.Context()); err != nil {
			return err
		}

		_, err := pipeline.ProcessAll(cmd.Context(), client, pdfDir, xmlDir, os.Stdout)
		return err
	},
}

func init() {
	processCmd.Flags().String("grobid-url", "http://localhost:8070", "GROBID server base URL")
	processCmd.Flags().String("pdf-dir", "tesis", "directory searched for thesis PDFs")
	processCmd.Flags().String("xml-dir", "output/grobid_xml", "directory receiving TEI XML files")

	rootCmd.AddCommand(processCmd)
}
