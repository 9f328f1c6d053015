package llm

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/avolkov/dealbrief/internal/model"
)

// Reporter turns finalized deal records into a narrative intelligence
// report. Requests are paced with a rate limiter so batch runs stay inside
// provider quotas.
type Reporter struct {
	provider Provider
	limiter  *rate.Limiter
	config   Config
}

// NewReporter creates a reporter. requestsPerMinute <= 0 disables pacing.
func NewReporter(provider Provider, config Config, requestsPerMinute float64) *Reporter {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerMinute/60), 1)
	}
	return &Reporter{provider: provider, limiter: limiter, config: config}
}

// Enabled reports whether a provider is configured.
func (r *Reporter) Enabled() bool {
	return r != nil && r.provider != nil
}

// Generate produces the intelligence report for the given records.
func (r *Reporter) Generate(ctx context.Context, deals []model.DealRecord) (*model.IntelligenceReport, error) {
	if !r.Enabled() {
		return nil, nil
	}
	if len(deals) == 0 {
		return nil, eris.New("no deals to report on")
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "rate limiter wait")
		}
	}

	resp, err := r.provider.Generate(ctx, Request{
		System:    systemPrompt,
		Prompt:    BuildPrompt(deals),
		Model:     r.config.Model,
		MaxTokens: r.config.MaxTokens,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "generate report via %s", r.provider.Name())
	}

	report := &model.IntelligenceReport{
		Provider:   r.provider.Name(),
		Model:      resp.Model,
		ReportMD:   resp.Content,
		TokensUsed: resp.TokensUsed,
	}
	if len(deals) > maxPromptDeals {
		report.Warnings = append(report.Warnings,
			"deal list truncated for prompt size; report covers the first 25 deals")
	}
	return report, nil
}
