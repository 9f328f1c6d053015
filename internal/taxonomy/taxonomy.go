// Package taxonomy holds the static keyword tables the classifiers score
// against: sector and geography vocabularies, the confidence-evidence
// framework, and the strategic rationale / risk factor lists. Tables are
// loaded once and treated as immutable; classifiers receive them by
// reference.
package taxonomy

// SectorEntry maps a sector name to its keyword vocabulary. Subsector
// keywords score double and record the best-matching subsector.
type SectorEntry struct {
	Name       string              `yaml:"name"`
	Keywords   []string            `yaml:"keywords"`
	Subsectors map[string][]string `yaml:"subsectors,omitempty"`
}

// TotalKeywords returns the normalization denominator for this sector:
// top-level keywords plus all subsector keywords.
func (s SectorEntry) TotalKeywords() int {
	n := len(s.Keywords)
	for _, kws := range s.Subsectors {
		n += len(kws)
	}
	return n
}

// GeographyEntry maps a geography name to its keyword and city vocabularies.
// City matches score double.
type GeographyEntry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Cities   []string `yaml:"cities,omitempty"`
}

// Tables bundles the mutable-at-load-time parts of the taxonomy. Build one
// with Default, optionally merge overrides, then treat as read-only.
type Tables struct {
	Sectors     []SectorEntry    `yaml:"sectors"`
	Geographies []GeographyEntry `yaml:"geographies"`
}

// Default returns the built-in taxonomy. Iteration order is fixed so that
// classification is deterministic when scores tie.
func Default() *Tables {
	return &Tables{
		Sectors: []SectorEntry{
			{
				Name:     "Automotive",
				Keywords: []string{"auto", "car", "vehicle", "motor", "automotive", "tesla", "ford", "bmw"},
				Subsectors: map[string][]string{
					"Electric Vehicles": {"ev", "electric vehicle", "battery", "charging"},
					"Components":        {"parts", "supplier", "tier 1", "drivetrain"},
				},
			},
			{
				Name:     "Technology",
				Keywords: []string{"tech", "software", "ai", "digital", "data", "cyber", "saas", "cloud", "app", "platform"},
				Subsectors: map[string][]string{
					"Artificial Intelligence": {"machine learning", "llm", "neural", "ai-powered"},
					"Cybersecurity":           {"security", "threat", "encryption"},
					"Infrastructure":          {"datacenter", "data center", "hosting", "hyperscaler"},
				},
			},
			{
				Name:     "Financial Services",
				Keywords: []string{"bank", "finance", "capital", "investment", "insurance", "fund", "fintech", "lender"},
				Subsectors: map[string][]string{
					"Payments":         {"payments", "card", "acquiring"},
					"Asset Management": {"asset management", "wealth", "portfolio"},
				},
			},
			{
				Name:     "Industrial",
				Keywords: []string{"construction", "industrial", "manufacturing", "engineering", "chemical", "steel", "machinery"},
				Subsectors: map[string][]string{
					"Automation": {"automation", "robotics", "plc"},
				},
			},
			{
				Name:     "Energy",
				Keywords: []string{"energy", "oil", "gas", "renewable", "power", "solar", "wind", "nuclear", "grid"},
				Subsectors: map[string][]string{
					"Renewables": {"offshore wind", "photovoltaic", "hydrogen"},
				},
			},
			{
				Name:     "Healthcare",
				Keywords: []string{"health", "medical", "pharma", "biotech", "hospital", "drug", "medicine", "clinical"},
				Subsectors: map[string][]string{
					"Biotech": {"genomics", "therapeutics", "trial"},
				},
			},
			{
				Name:     "Consumer",
				Keywords: []string{"retail", "consumer", "food", "beauty", "fashion", "beverage", "brand", "grocery"},
				Subsectors: map[string][]string{
					"Food & Beverage": {"snacks", "dairy", "brewery"},
				},
			},
			{
				Name:     "Real Estate",
				Keywords: []string{"real estate", "property", "reit", "building", "development", "logistics park"},
			},
			{
				Name:     "Agriculture",
				Keywords: []string{"agriculture", "farming", "forest", "crop", "livestock", "timber"},
			},
			{
				Name:     "Defense",
				Keywords: []string{"defense", "defence", "military", "aerospace", "radar", "munitions"},
			},
		},
		Geographies: []GeographyEntry{
			{
				Name:     "UK",
				Keywords: []string{"uk", "britain", "british", "england", "scotland", "wales", "uk-based"},
				Cities:   []string{"london", "manchester", "edinburgh"},
			},
			{
				Name:     "Germany",
				Keywords: []string{"german", "germany", "deutsche"},
				Cities:   []string{"berlin", "munich", "frankfurt", "hamburg"},
			},
			{
				Name:     "France",
				Keywords: []string{"france", "french"},
				Cities:   []string{"paris", "lyon"},
			},
			{
				Name:     "Europe",
				Keywords: []string{"europe", "european", "eu", "nordic", "benelux"},
				Cities:   []string{"brussels", "amsterdam", "stockholm", "helsinki", "madrid", "milan"},
			},
			{
				Name:     "USA",
				Keywords: []string{"us", "usa", "america", "american", "us-based"},
				Cities:   []string{"new york", "california", "chicago", "boston", "austin"},
			},
			{
				Name:     "China",
				Keywords: []string{"china", "chinese"},
				Cities:   []string{"beijing", "shanghai", "shenzhen"},
			},
			{
				Name:     "Asia",
				Keywords: []string{"asia", "asian", "japan", "japanese", "singapore", "korea", "india"},
				Cities:   []string{"tokyo", "hong kong", "seoul", "mumbai"},
			},
		},
	}
}
