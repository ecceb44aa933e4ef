// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import "strings"

const (
	defaultChunkSize    = 512
	defaultChunkOverlap = 50
)

// chunkWords splits text into word-based chunks of at most size words,
// with overlap words repeated between consecutive chunks so retrieval
// queries that straddle a boundary still match. Overlap is clamped below
// size to guarantee forward progress.
func chunkWords(text string, size, overlap int) []string {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 {
		overlap = defaultChunkOverlap
	}
	if overlap >= size {
		overlap = size - 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	step := size - overlap
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
