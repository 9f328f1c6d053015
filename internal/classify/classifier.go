// Package classify scores deal text against the taxonomy tables to assign a
// sector (with optional subsector) and a set of geographies. Results are
// memoized per (title, body) because digests frequently repeat summary items
// verbatim in their detailed sections.
package classify

import (
	"strings"

	"github.com/avolkov/dealbrief/internal/cache"
	"github.com/avolkov/dealbrief/internal/taxonomy"
)

// sectionFallbackConfidence is assigned when keyword confidence is too low
// and the enclosing section label is adopted as the sector.
const sectionFallbackConfidence = 0.9

// SectorResult is the sector classification for one deal.
type SectorResult struct {
	Sector     string  `json:"sector"`
	Subsector  string  `json:"subsector,omitempty"`
	Confidence float64 `json:"confidence"`
}

// GeoResult is the geography classification for one deal.
type GeoResult struct {
	Primary    string   `json:"primary"`
	All        []string `json:"all,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Classifier scores text against the taxonomy. Safe for concurrent use when
// backed by a Memo; the tables are read-only.
type Classifier struct {
	tables    *taxonomy.Tables
	threshold float64
	memo      *cache.Memo // nil disables memoization
}

// NewClassifier creates a classifier. threshold is the minimum normalized
// keyword score before the section-label fallback applies.
func NewClassifier(tables *taxonomy.Tables, threshold float64, memo *cache.Memo) *Classifier {
	if tables == nil {
		tables = taxonomy.Default()
	}
	if threshold <= 0 {
		threshold = 0.7
	}
	return &Classifier{tables: tables, threshold: threshold, memo: memo}
}

// Sector classifies the deal's sector from its title and body. When the
// keyword score stays under the threshold the enclosing section label wins;
// with no usable section the result is the 'Other' fallback.
func (c *Classifier) Sector(title, body, section string) SectorResult {
	key := cache.Key("sector", title, body, section)
	if c.memo != nil {
		if v, ok := c.memo.Get(key); ok {
			return v.(SectorResult)
		}
	}

	res := c.scoreSector(normalizeText(title+" "+body), section)

	if c.memo != nil {
		c.memo.Set(key, res)
	}
	return res
}

func (c *Classifier) scoreSector(text, section string) SectorResult {
	var (
		bestScore float64
		bestName  string
		bestSub   string
	)

	for _, entry := range c.tables.Sectors {
		score := 0
		sub := ""
		subBest := 0

		for _, kw := range entry.Keywords {
			if containsKeyword(text, kw) {
				score++
			}
		}
		for name, kws := range entry.Subsectors {
			matched := 0
			for _, kw := range kws {
				if containsKeyword(text, kw) {
					matched++
				}
			}
			score += 2 * matched
			if matched > subBest {
				subBest = matched
				sub = name
			}
		}

		total := entry.TotalKeywords()
		if total == 0 {
			continue
		}
		normalized := float64(score) / float64(total)
		if normalized > bestScore {
			bestScore = normalized
			bestName = entry.Name
			bestSub = sub
		}
	}

	if bestScore >= c.threshold {
		if bestScore > 1 {
			bestScore = 1
		}
		return SectorResult{Sector: bestName, Subsector: bestSub, Confidence: bestScore}
	}

	// Keyword confidence too low: trust the digest's own section heading
	// when one governed this deal. The best subsector survives the fallback.
	if section != "" {
		return SectorResult{Sector: section, Subsector: bestSub, Confidence: sectionFallbackConfidence}
	}

	return SectorResult{Sector: "Other"}
}

// Geography classifies the deal's geographies. Every geography with any
// match lands in All; the best normalized score picks Primary.
func (c *Classifier) Geography(title, body string) GeoResult {
	key := cache.Key("geo", title, body)
	if c.memo != nil {
		if v, ok := c.memo.Get(key); ok {
			return v.(GeoResult)
		}
	}

	res := c.scoreGeography(normalizeText(title + " " + body))

	if c.memo != nil {
		c.memo.Set(key, res)
	}
	return res
}

func (c *Classifier) scoreGeography(text string) GeoResult {
	res := GeoResult{Primary: "Global"}
	best := 0.0

	for _, entry := range c.tables.Geographies {
		score := 0
		for _, kw := range entry.Keywords {
			if containsKeyword(text, kw) {
				score++
			}
		}
		for _, city := range entry.Cities {
			if containsKeyword(text, city) {
				score += 2
			}
		}
		if score == 0 || len(entry.Keywords) == 0 {
			continue
		}

		normalized := float64(score) / float64(len(entry.Keywords))
		if normalized > 1 {
			normalized = 1
		}
		res.All = append(res.All, entry.Name)
		if normalized > best {
			best = normalized
			res.Primary = entry.Name
		}
	}

	res.Confidence = best
	return res
}

// normalizeText lower-cases and flattens punctuation to single spaces so
// keyword matching is token-bounded ("us" never matches inside "business").
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	if !lastSpace {
		b.WriteByte(' ')
	}
	return b.String()
}

func containsKeyword(normalized, keyword string) bool {
	kw := strings.TrimSpace(normalizeText(keyword))
	if kw == "" {
		return false
	}
	return strings.Contains(normalized, " "+kw+" ")
}
