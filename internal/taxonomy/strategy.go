package taxonomy

// StrategyEntry is a named keyword list used by the rationale and risk
// scorers. Scores are matched/total per entry, so list length matters.
type StrategyEntry struct {
	Name     string
	Keywords []string
}

// Rationales returns the strategic-rationale categories.
func Rationales() []StrategyEntry {
	return []StrategyEntry{
		{Name: "Market Expansion", Keywords: []string{
			"expand", "expansion", "new market", "international", "footprint", "subsidiaries", "enter",
		}},
		{Name: "Scale Economics", Keywords: []string{
			"consolidation", "scale", "synergies", "cost savings", "merger", "combine",
		}},
		{Name: "Technology Acquisition", Keywords: []string{
			"technology", "software", "ai", "digital", "platform", "capabilities", "ip",
		}},
		{Name: "Vertical Integration", Keywords: []string{
			"supply chain", "vertical", "upstream", "downstream", "supplier", "integration",
		}},
		{Name: "Portfolio Optimization", Keywords: []string{
			"divest", "divests", "disposal", "carve-out", "spin-off", "non-core", "streamline",
		}},
		{Name: "Talent Acquisition", Keywords: []string{
			"talent", "team", "acqui-hire", "engineers", "expertise", "founders",
		}},
	}
}

// RationaleFallback is used when no rationale category matches.
const RationaleFallback = "Strategic Expansion"

// RiskFactors returns the risk-factor keyword lists.
func RiskFactors() []StrategyEntry {
	return []StrategyEntry{
		{Name: "regulatory", Keywords: []string{
			"antitrust", "regulator", "regulatory", "approval", "competition authority", "clearance", "cfius",
		}},
		{Name: "execution", Keywords: []string{
			"integration", "complex", "delay", "financing", "conditions", "uncertain", "unclear",
		}},
		{Name: "market", Keywords: []string{
			"competition", "headwinds", "cyclical", "demand", "volatility", "downturn",
		}},
		{Name: "financial", Keywords: []string{
			"debt", "leverage", "loss-making", "impairment", "writedown", "covenant",
		}},
	}
}

// RiskFallback is the primary risk factor reported when nothing matched.
const RiskFallback = "execution"
