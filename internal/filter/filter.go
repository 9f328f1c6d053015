// Package filter implements the category allow-list filter: a two-pass scan
// that keeps only the numbered items belonging to permitted sections, along
// with their detailed write-ups wherever those appear in the document.
package filter

import (
	"strings"

	"github.com/avolkov/dealbrief/internal/model"
	"github.com/avolkov/dealbrief/internal/segment"
)

// Placeholder is emitted when nothing in the document matches the
// allow-list, so callers can tell "nothing allowed" from "no deals".
const Placeholder = "No sections matching the configured categories were found."

// maxPressExamples caps the retained press-release samples in the report.
const maxPressExamples = 3

// Result is the filtered document plus its filtering report.
type Result struct {
	Output string
	Report model.FilterReport
}

// Filter retains sections by label. Matching is case-insensitive and
// ignores punctuation.
type Filter struct {
	allowed map[string]bool
}

// New creates a filter for the given allowed section labels.
func New(allowed []string) *Filter {
	f := &Filter{allowed: make(map[string]bool, len(allowed))}
	for _, label := range allowed {
		f.allowed[normalizeLabel(label)] = true
	}
	return f
}

// Apply runs both passes over the document.
//
// Pass 1 builds the immutable id->section index: which section label governed
// each numbered item. Pass 2 re-emits lines that sit inside an allowed
// section, or that belong to the detailed block of an allow-listed id. A
// deal-start line re-opens detailed tracking keyed on its id regardless of
// which section currently governs.
func (f *Filter) Apply(text string) *Result {
	index := f.buildIndex(text)

	report := model.FilterReport{
		TotalSections:    len(index.sections),
		TotalItems:       len(index.itemIDs),
		SectionLabels:    index.sections,
		PressLinesBefore: countPressLines(text),
	}

	allowedIDs := make(map[string]bool)
	for _, label := range index.sections {
		if f.isAllowed(label) {
			report.AllowedSections++
			report.AllowedLabels = append(report.AllowedLabels, label)
			for _, id := range index.idsBySection[label] {
				allowedIDs[id] = true
			}
		} else {
			report.FilteredLabels = append(report.FilteredLabels, label)
		}
	}
	report.FilteredSections = report.TotalSections - report.AllowedSections

	for _, id := range index.itemIDs {
		if allowedIDs[id] {
			report.AllowedItems++
			report.AllowedIDs = append(report.AllowedIDs, id)
		} else {
			report.FilteredIDs = append(report.FilteredIDs, id)
		}
	}

	if report.AllowedSections == 0 {
		report.NoAllowedCategories = true
		return &Result{Output: Placeholder, Report: report}
	}

	output := f.reemit(text, allowedIDs)
	report.PressLinesAfter = countPressLines(output)
	report.ExamplePressLines = pressExamples(output, maxPressExamples)

	return &Result{Output: output, Report: report}
}

// index is the outcome of pass 1.
type index struct {
	sections     []string            // unique labels, document order
	idsBySection map[string][]string // label -> deal ids opened under it
	itemIDs      []string            // every deal id, document order
}

func (f *Filter) buildIndex(text string) *index {
	idx := &index{idsBySection: make(map[string][]string)}
	seen := make(map[string]bool)
	section := ""

	for _, raw := range strings.Split(text, "\n") {
		line := segment.ClassifyLine(raw)
		switch line.Kind {
		case segment.KindSectionHeader:
			section = line.Raw
			if !seen[section] {
				seen[section] = true
				idx.sections = append(idx.sections, section)
			}
		case segment.KindDealStart:
			idx.idsBySection[section] = append(idx.idsBySection[section], line.DealID)
			idx.itemIDs = append(idx.itemIDs, line.DealID)
		}
	}
	return idx
}

func (f *Filter) reemit(text string, allowedIDs map[string]bool) string {
	var out []string

	lastBlank := func() bool {
		return len(out) > 0 && out[len(out)-1] == ""
	}
	blankBefore := func() {
		if len(out) > 0 && !lastBlank() {
			out = append(out, "")
		}
	}

	sectionAllowed := false
	detailed := false

	for _, raw := range strings.Split(text, "\n") {
		line := segment.ClassifyLine(raw)
		switch line.Kind {
		case segment.KindSectionHeader:
			sectionAllowed = f.isAllowed(line.Raw)
			detailed = false
			if sectionAllowed {
				blankBefore()
				out = append(out, line.Raw)
			}

		case segment.KindDealStart:
			detailed = allowedIDs[line.DealID]
			switch {
			case sectionAllowed:
				out = append(out, line.Raw)
			case detailed:
				// Detailed write-up for an allowed id, stranded after a
				// disallowed header.
				blankBefore()
				out = append(out, line.Raw)
			}

		case segment.KindBlank:
			if (sectionAllowed || detailed) && len(out) > 0 && !lastBlank() {
				out = append(out, "")
			}

		default:
			if sectionAllowed || detailed {
				out = append(out, strings.TrimRight(raw, " \t"))
			}
		}
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

func (f *Filter) isAllowed(label string) bool {
	return f.allowed[normalizeLabel(label)]
}

// normalizeLabel lower-cases a section label and strips punctuation so
// "Consumer: Retail" and "consumer retail" compare equal.
func normalizeLabel(label string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(label) {
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
	return strings.TrimSpace(b.String())
}

func countPressLines(text string) int {
	n := 0
	for _, raw := range strings.Split(text, "\n") {
		if isPressLine(raw) {
			n++
		}
	}
	return n
}

func pressExamples(text string, max int) []string {
	var examples []string
	for _, raw := range strings.Split(text, "\n") {
		if isPressLine(raw) {
			examples = append(examples, strings.TrimSpace(raw))
			if len(examples) == max {
				break
			}
		}
	}
	return examples
}

func isPressLine(raw string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "press release")
}
