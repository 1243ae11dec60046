package assistant

import (
	"context"
	"fmt"
	"strconv"
)

// DailyReport turns a batch of already-scored papers into a narrative
// digest. It sits outside the per-paper critical path.
type DailyReport struct {
	cfg Config
	inv *Invoker
}

// NewDailyReport resolves the daily-report config.
func NewDailyReport(reg Registry, inv *Invoker) (*DailyReport, error) {
	cfg, err := reg.Resolve(KindDailyReport)
	if err != nil {
		return nil, err
	}
	return &DailyReport{cfg: cfg, inv: inv}, nil
}

// Name identifies the assistant in logs.
func (a *DailyReport) Name() string {
	return a.cfg.Name
}

// Generate writes the digest for one day given the serialized paper
// summaries.
func (a *DailyReport) Generate(ctx context.Context, reportDay string, topK int, papers string) (string, error) {
	prompt := format(a.cfg.Prompt, map[string]string{
		"report_day": reportDay,
		"top_k":      strconv.Itoa(topK),
		"papers":     papers,
	})

	parsed, err := a.inv.Invoke(ctx, a.cfg, a.cfg.Instruction, prompt)
	if err != nil {
		return "", err
	}

	report := toString(parsed["report"])
	if report == "" {
		return "", fmt.Errorf("daily report: response has no report field")
	}
	return report, nil
}
