// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

// categoryPriority is the order keyword lists are tested in. A match in an
// earlier category wins immediately, so the specific categories come before
// the generic ones (a heading like "Objetivos de la introducción" is an
// objectives section, not an introduction).
var categoryPriority = []types.Category{
	types.CatResumenAbstract,
	types.CatObjetivos,
	types.CatMetodologia,
	types.CatResultados,
	types.CatConclusiones,
	types.CatReferencias,
	types.CatAntecedentes,
	types.CatJustificacion,
	types.CatIntroduccion,
}

// defaultKeywords maps each category to its ordered keyword phrases. The
// lists are stored already normalized (lowercase, diacritics stripped) so
// containment tests against normalized headings are direct. The lists mix
// Spanish and English; theses in this corpus freely switch between the two.
var defaultKeywords = map[types.Category][]string{
	types.CatResumenAbstract: {
		"resumen", "abstract", "summary", "sintesis",
	},
	types.CatObjetivos: {
		"objetivo general", "objetivos", "objetivo",
		"objectives", "objective", "goals", "propositos",
	},
	types.CatMetodologia: {
		"metodologia", "methodology", "materiales y metodos",
		"diseno metodologico", "metodos", "metodo", "methods",
	},
	types.CatResultados: {
		"resultados", "results", "findings", "hallazgos",
		"analisis de datos", "discusion", "discussion",
	},
	types.CatConclusiones: {
		"conclusiones", "conclusions", "conclusion", "cierre",
	},
	types.CatReferencias: {
		"referencias", "references", "bibliografia", "bibliography",
	},
	types.CatAntecedentes: {
		"antecedentes", "background", "estado del arte",
		"state of the art", "marco teorico", "marco historico",
		"revision bibliografica", "literature review",
		"contexto historico",
	},
	types.CatJustificacion: {
		"justificacion", "justification", "motivacion", "motivation",
		"hipotesis", "hypothesis", "supuestos",
	},
	types.CatIntroduccion: {
		"introduccion", "introduction", "intro", "presentacion",
	},
}

// canonicalLabels holds one short label per category for the similarity
// fallback, normalized like the keyword lists.
var canonicalLabels = map[types.Category]string{
	types.CatResumenAbstract: "resumen",
	types.CatObjetivos:       "objetivos",
	types.CatMetodologia:     "metodologia",
	types.CatResultados:      "resultados y analisis",
	types.CatConclusiones:    "conclusiones",
	types.CatReferencias:     "referencias",
	types.CatAntecedentes:    "antecedentes y estado del arte",
	types.CatJustificacion:   "justificacion e hipotesis",
	types.CatIntroduccion:    "introduccion",
}

const (
	defaultSimilarityThreshold = 0.6
	defaultBodyWindow          = 200
)

// Categorizer assigns academic category labels to sections. It is stateless
// after construction: identical (heading, body) input always yields the
// identical category.
type Categorizer struct {
	keywords  map[types.Category][]string
	threshold float64
	window    int
}

// NewCategorizer builds a categorizer from config. Zero-valued tunables take
// the documented defaults; a keywords file, when configured, replaces the
// built-in lists for the categories it names.
func NewCategorizer(cfg types.AnalyzerConfig) (*Categorizer, error) {
	c := &Categorizer{
		keywords:  defaultKeywords,
		threshold: cfg.SimilarityThreshold,
		window:    cfg.BodyWindow,
	}
	if c.threshold <= 0 {
		c.threshold = defaultSimilarityThreshold
	}
	if c.window <= 0 {
		c.window = defaultBodyWindow
	}

	if cfg.KeywordsFile != "" {
		overrides, err := loadKeywordOverrides(cfg.KeywordsFile)
		if err != nil {
			return nil, err
		}
		merged := make(map[types.Category][]string, len(defaultKeywords))
		for cat, kws := range defaultKeywords {
			merged[cat] = kws
		}
		for cat, kws := range overrides {
			merged[cat] = kws
		}
		c.keywords = merged
	}

	return c, nil
}

// Categorize assigns a category to a section given its heading and body
// text. Precedence: keyword containment on the heading, similarity of the
// heading against canonical labels, keyword containment on the leading body
// text, and finally otro.
func (c *Categorizer) Categorize(heading, body string) types.Category {
	h := normalizeHeading(heading)

	if h != "" {
		if cat, ok := c.matchKeywords(h); ok {
			return cat
		}
		if cat, ok := c.matchSimilarity(h); ok {
			return cat
		}
	}

	// Uninformative headings ("Capítulo 3") sometimes open with the section
	// name inside the body instead. A weaker signal, so it runs last.
	if b := normalizeHeading(truncate(body, c.window)); b != "" {
		if cat, ok := c.matchKeywords(b); ok {
			return cat
		}
	}

	return types.CatOtro
}

// matchKeywords tests containment of each category's keywords against text,
// in priority order. The first match wins; this is a deterministic
// tie-break, not a scored contest.
func (c *Categorizer) matchKeywords(text string) (types.Category, bool) {
	for _, cat := range categoryPriority {
		for _, kw := range c.keywords[cat] {
			if strings.Contains(text, kw) {
				return cat, true
			}
		}
	}
	return "", false
}

// matchSimilarity scores the heading against each category's canonical
// label and returns the best category when its score clears the threshold.
// Iteration follows priority order with a strictly-greater comparison, so
// equal scores resolve to the higher-priority category.
func (c *Categorizer) matchSimilarity(heading string) (types.Category, bool) {
	var best types.Category
	bestScore := 0.0
	for _, cat := range categoryPriority {
		score := levenshtein.Similarity(heading, canonicalLabels[cat], nil)
		if score > bestScore {
			bestScore = score
			best = cat
		}
	}
	if bestScore < c.threshold {
		return "", false
	}
	return best, true
}

// normalizeHeading lowercases, strips diacritics, drops punctuation, and
// collapses whitespace, matching the normalization the keyword lists are
// stored in.
func normalizeHeading(s string) string {
	s = strings.ToLower(s)
	s = stripDiacritics(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stripDiacritics decomposes to NFD, removes combining marks, and
// recomposes. transform.Transformer values carry state and are not safe
// for concurrent use, so each call builds a fresh chain.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// loadKeywordOverrides reads a YAML mapping of category name to keyword
// list. Keywords are normalized on load so user-supplied lists behave like
// the built-ins.
func loadKeywordOverrides(path string) (map[types.Category][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file %s: %w", path, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}

	valid := make(map[types.Category]bool, len(types.Categories))
	for _, cat := range types.Categories {
		valid[cat] = true
	}

	overrides := make(map[types.Category][]string, len(raw))
	for name, kws := range raw {
		cat := types.Category(name)
		if !valid[cat] {
			return nil, fmt.Errorf("keywords file %s: unknown category %q", path, name)
		}
		normalized := make([]string, 0, len(kws))
		for _, kw := range kws {
			if n := normalizeHeading(kw); n != "" {
				normalized = append(normalized, n)
			}
		}
		overrides[cat] = normalized
	}
	return overrides, nil
}
