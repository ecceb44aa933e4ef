// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grobid is the HTTP client for the GROBID PDF extraction service.
// It submits PDF files for full-text or header-only processing and returns
// validated TEI/XML text; everything past this boundary is the analyzer's
// concern.
package grobid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/pdiddy/thesis-analyzer/internal/httputil"
	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

const (
	defaultServerURL       = "http://localhost:8070"
	defaultFulltextTimeout = 5 * time.Minute
	defaultHeaderTimeout   = time.Minute
)

// Client talks to one GROBID server.
type Client struct {
	serverURL  string
	userAgent  string
	maxRetries int
	fulltext   *http.Client
	header     *http.Client
}

// NewClient builds a client from config, applying defaults for unset
// fields. Full-text processing of a whole thesis routinely takes minutes,
// so it gets its own, much longer timeout than the header-only call.
func NewClient(cfg types.GrobidConfig) *Client {
	serverURL := strings.TrimRight(cfg.ServerURL, "/")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	fulltextTimeout := cfg.FulltextTimeout
	if fulltextTimeout <= 0 {
		fulltextTimeout = defaultFulltextTimeout
	}
	headerTimeout := cfg.HeaderTimeout
	if headerTimeout <= 0 {
		headerTimeout = defaultHeaderTimeout
	}

	return &Client{
		serverURL:  serverURL,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		fulltext:   &http.Client{Timeout: fulltextTimeout},
		header:     &http.Client{Timeout: headerTimeout},
	}
}

// ServerURL returns the configured server base URL.
func (c *Client) ServerURL() string { return c.serverURL }

// IsAlive checks the GROBID health endpoint.
func (c *Client) IsAlive(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/api/isalive", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.header.Do(req)
	if err != nil {
		return fmt.Errorf("GROBID server unreachable at %s: %w", c.serverURL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GROBID health check returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// ProcessFulltext submits a PDF to processFulltextDocument and returns the
// TEI/XML text.
func (c *Client) ProcessFulltext(ctx context.Context, pdfPath string) (string, error) {
	return c.process(ctx, c.fulltext, "/api/processFulltextDocument", pdfPath)
}

// ProcessHeader submits a PDF to processHeaderDocument, which extracts only
// the bibliographic header and is far cheaper than full-text processing.
func (c *Client) ProcessHeader(ctx context.Context, pdfPath string) (string, error) {
	return c.process(ctx, c.header, "/api/processHeaderDocument", pdfPath)
}

func (c *Client) process(ctx context.Context, client *http.Client, endpoint, pdfPath string) (string, error) {
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", pdfPath, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("input", filepath.Base(pdfPath))
	if err != nil {
		return "", fmt.Errorf("building multipart request: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return "", fmt.Errorf("building multipart request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, client, req, c.maxRetries)
	if err != nil {
		return "", fmt.Errorf("GROBID request for %s: %w", filepath.Base(pdfPath), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading GROBID response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GROBID returned HTTP %d for %s: %s",
			resp.StatusCode, filepath.Base(pdfPath), snippet(string(data)))
	}

	xml := strings.TrimSpace(string(data))
	if err := ValidateXML(xml); err != nil {
		return "", fmt.Errorf("GROBID response for %s: %w", filepath.Base(pdfPath), err)
	}

	return xml, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/xml")
}

// ValidateXML checks that content is non-empty, looks like XML, and parses
// as a well-formed document. GROBID occasionally answers 200 with an HTML
// error page or a truncated body; catching that here keeps malformed text
// out of the saved TEI corpus.
func ValidateXML(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("empty response body")
	}
	if !strings.HasPrefix(content, "<") {
		return fmt.Errorf("response is not XML: %s", snippet(content))
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return fmt.Errorf("malformed XML: %w", err)
	}
	if doc.Root() == nil {
		return fmt.Errorf("malformed XML: no root element")
	}
	return nil
}

// snippet truncates s for inclusion in error messages.
func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
