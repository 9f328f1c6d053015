package segment

import (
	"regexp"
	"strings"
)

// LineKind is the structural role of one digest line.
type LineKind int

const (
	KindBlank LineKind = iota
	KindDealStart
	KindBullet
	KindMetadata
	KindSectionHeader
	KindProse
)

func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindDealStart:
		return "deal_start"
	case KindBullet:
		return "bullet"
	case KindMetadata:
		return "metadata"
	case KindSectionHeader:
		return "section_header"
	case KindProse:
		return "prose"
	default:
		return "unknown"
	}
}

// Line is one classified digest line.
type Line struct {
	Kind LineKind
	Raw  string // trimmed source line

	DealID string // KindDealStart
	Title  string // KindDealStart
	Text   string // KindBullet detail text
	Key    string // KindMetadata, lower-cased
	Value  string // KindMetadata

	// HasMoney marks lines carrying a recognizable monetary pattern. It is a
	// display flag only and never changes the structural role.
	HasMoney bool
}

var (
	dealStartRe = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)

	// A 4-digit year next to the line's other digits marks prose, not a
	// header ("Aims to double sales by 2030").
	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	// Verb and actor patterns that only occur in narrative sentences.
	narrativeRe = regexp.MustCompile(`(?i)\b(announces?|announced|reports?|reported|completes?|completed|said|says|according to|will|would|may|might|could|the company|ceo|cfo|chairman)\b`)

	moneyRe = regexp.MustCompile(`(?i)(EUR|USD|GBP|CNY|\$|£|€)\s*[\d][\d,\.]*|[\d][\d,\.]*\s*(million|billion|bn)\b`)
)

// metadataKeys is the fixed set of recognized "Key: value" prefixes.
var metadataKeys = map[string]bool{
	"source":          true,
	"size":            true,
	"grade":           true,
	"intelligence id": true,
	"stake value":     true,
	"value":           true,
	"alert":           true,
}

// ClassifyLine determines the role of a single line. Rules run in a fixed
// exclusion-then-inclusion order; the section-header test is last and only
// admits lines that survive every narrative check.
func ClassifyLine(raw string) Line {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Line{Kind: KindBlank}
	}

	hasMoney := moneyRe.MatchString(line)

	if m := dealStartRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: KindDealStart, Raw: line, DealID: m[1], Title: strings.TrimSpace(m[2]), HasMoney: hasMoney}
	}

	if strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
		return Line{Kind: KindBullet, Raw: line, Text: strings.TrimSpace(line[bulletMarkerLen(line):]), HasMoney: hasMoney}
	}

	if key, value, ok := splitMetadata(line); ok {
		return Line{Kind: KindMetadata, Raw: line, Key: key, Value: value, HasMoney: hasMoney}
	}

	if IsSectionHeader(line) {
		return Line{Kind: KindSectionHeader, Raw: line}
	}

	return Line{Kind: KindProse, Raw: line, HasMoney: hasMoney}
}

func bulletMarkerLen(line string) int {
	if strings.HasPrefix(line, "•") {
		return len("•")
	}
	return 1
}

// splitMetadata matches "Key: value" lines with exactly one colon and a
// recognized key. Anything else falls through to the header/prose rules.
func splitMetadata(line string) (key, value string, ok bool) {
	if strings.Count(line, ":") != 1 {
		return "", "", false
	}
	idx := strings.Index(line, ":")
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	if !metadataKeys[key] {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

// IsSectionHeader reports whether a line looks like a short category header.
// Kept as a standalone pure function so the rule chain can be tested and
// reordered without touching the segmenter.
func IsSectionHeader(line string) bool {
	if line == "" {
		return false
	}
	if len(line) >= 60 {
		return false
	}
	if len(strings.Fields(line)) > 4 {
		return false
	}
	if strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
		return false
	}
	if dealStartRe.MatchString(line) {
		return false
	}
	if strings.ContainsAny(line, "$£€") {
		return false
	}
	if yearRe.MatchString(line) {
		return false
	}
	if strings.Count(line, ":") > 1 {
		return false
	}
	if narrativeRe.MatchString(line) {
		return false
	}
	return true
}
