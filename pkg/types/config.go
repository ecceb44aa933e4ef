package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "thesis-analyzer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GrobidConfig holds settings for the GROBID extraction service client.
type GrobidConfig struct {
	HTTPConfig `yaml:",inline"`

	// ServerURL is the base URL of the GROBID server (default http://localhost:8070).
	ServerURL string `json:"server_url" yaml:"server_url"`

	// FulltextTimeout bounds a single processFulltextDocument call
	// (default 5m; large theses are slow to process).
	FulltextTimeout time.Duration `json:"fulltext_timeout" yaml:"fulltext_timeout"`

	// HeaderTimeout bounds a single processHeaderDocument call (default 1m).
	HeaderTimeout time.Duration `json:"header_timeout" yaml:"header_timeout"`

	// MaxRetries is the retry budget for 503 (server busy) responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// AnalyzerConfig holds the tuning parameters of the TEI analyzer. The
// zero value selects the documented defaults at each use site.
type AnalyzerConfig struct {
	// SimilarityThreshold is the minimum similarity ratio for accepting a
	// category from heading similarity scoring (default 0.6).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// BodyWindow is the number of leading body characters scanned during
	// the body-text keyword fallback (default 200).
	BodyWindow int `json:"body_window" yaml:"body_window"`

	// LanguageSampleWords is the number of leading words the language
	// detector inspects (default 100).
	LanguageSampleWords int `json:"language_sample_words" yaml:"language_sample_words"`

	// LanguageMinHits is the minimum marker-word count either language must
	// reach before the detector commits to a classification (default 1).
	LanguageMinHits int `json:"language_min_hits" yaml:"language_min_hits"`

	// KeywordsFile optionally points to a YAML file overriding the built-in
	// category keyword lists.
	KeywordsFile string `json:"keywords_file,omitempty" yaml:"keywords_file,omitempty"`
}

// PipelineConfig holds settings for batch PDF processing and analysis output.
type PipelineConfig struct {
	// PDFDir is the directory searched for thesis PDFs (default "tesis").
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// XMLDir is the directory holding (or receiving) TEI XML files
	// (default "output/grobid_xml").
	XMLDir string `json:"xml_dir" yaml:"xml_dir"`

	// OutDir is the base directory for analysis outputs: the batch JSON
	// file and structured XML trees (default "output").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Structured controls whether per-file categorized XML is written
	// alongside the batch JSON (default true).
	Structured bool `json:"structured" yaml:"structured"`
}

// StoreConfig holds settings for the SQLite analysis store.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "output/thesis_database.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// ChunkSize is the word count per text chunk (default 512).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// ChunkOverlap is the word overlap between consecutive chunks (default 50).
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all stage configurations.
type Config struct {
	Grobid   GrobidConfig   `json:"grobid" yaml:"grobid"`
	Analyzer AnalyzerConfig `json:"analyzer" yaml:"analyzer"`
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
