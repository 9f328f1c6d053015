// Package finance extracts monetary values from deal text and buckets deal
// size. Extraction is pattern-ordered: qualified values (enterprise,
// transaction) are preferred over bare currency mentions.
package finance

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avolkov/dealbrief/internal/model"
)

// contextWindow is how many characters around a match are inspected when
// classifying the value type and detecting billion-scale magnitudes.
const contextWindow = 50

// matchConfidence is the fixed extraction confidence once any value parsed.
const matchConfidence = 0.8

const amountPart = `([\d,]+(?:\.\d+)?)\s*(billion|million|bn|m)?\b`

// valuePatterns are tried in order; the first match that parses wins.
var valuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)enterprise value of\s*(EUR|USD|GBP|CNY|\$|£|€)\s*` + amountPart),
	regexp.MustCompile(`(?i)(?:transaction|deal) value of\s*(EUR|USD|GBP|CNY|\$|£|€)\s*` + amountPart),
	regexp.MustCompile(`(?i)\b(EUR|USD|GBP|CNY)\s*` + amountPart),
	regexp.MustCompile(`([$£€])\s*` + amountPart),
}

var (
	billionRe   = regexp.MustCompile(`(?i)\b(billion|bn)\b`)
	evCtxRe     = regexp.MustCompile(`(?i)\b(enterprise value|ev)\b`)
	equityCtxRe = regexp.MustCompile(`(?i)\b(equity value|market cap)\b`)
)

var symbolCurrency = map[string]string{
	"$": "USD",
	"£": "GBP",
	"€": "EUR",
}

// Extractor scans deal text for currency/amount expressions.
type Extractor struct {
	baseCurrency string
}

// NewExtractor creates an extractor. baseCurrency is used when the currency
// cannot be inferred from the match; empty defaults to USD.
func NewExtractor(baseCurrency string) *Extractor {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	return &Extractor{baseCurrency: baseCurrency}
}

// Extract finds the first parseable monetary value in text and classifies it
// as enterprise, equity, or transaction value from its surrounding context.
// Values are normalized to millions. Malformed numeric literals are skipped
// without aborting the scan; no match yields a zero-confidence result.
func (e *Extractor) Extract(text string) model.FinancialData {
	for _, pattern := range valuePatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			currency := e.inferCurrency(submatch(text, loc, 1))

			amount, err := parseAmount(submatch(text, loc, 2))
			if err != nil {
				continue // malformed literal, keep scanning
			}

			window := contextAround(text, loc[0], loc[1])
			unit := strings.ToLower(submatch(text, loc, 3))
			if unit == "billion" || unit == "bn" || billionRe.MatchString(window) {
				amount *= 1000
			}

			fd := model.FinancialData{
				Currency:   currency,
				Matched:    strings.TrimSpace(matched),
				Confidence: matchConfidence,
			}
			switch {
			case evCtxRe.MatchString(window):
				fd.EnterpriseValue = &amount
			case equityCtxRe.MatchString(window):
				fd.EquityValue = &amount
			default:
				fd.TransactionValue = &amount
			}
			return fd
		}
	}
	return model.FinancialData{}
}

func (e *Extractor) inferCurrency(token string) string {
	if cur, ok := symbolCurrency[token]; ok {
		return cur
	}
	token = strings.ToUpper(strings.TrimSpace(token))
	switch token {
	case "EUR", "USD", "GBP", "CNY":
		return token
	}
	return e.baseCurrency
}

func parseAmount(literal string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(literal), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func submatch(text string, loc []int, group int) string {
	start, end := loc[2*group], loc[2*group+1]
	if start < 0 || end < 0 {
		return ""
	}
	return text[start:end]
}

func contextAround(text string, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
