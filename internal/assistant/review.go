package assistant

import (
	"context"
	"strings"

	"PaperReview/internal/domain"
)

// noTriageContext stands in when the triage stage produced nothing.
const noTriageContext = "No triage summary is available; judge from the fields above."

// GeneralReviewer produces the initial five-dimension verdict.
type GeneralReviewer struct {
	cfg Config
	inv *Invoker
}

// NewGeneralReviewer resolves the general reviewer config.
func NewGeneralReviewer(reg Registry, inv *Invoker) (*GeneralReviewer, error) {
	cfg, err := reg.Resolve(KindReviewerGeneral)
	if err != nil {
		return nil, err
	}
	return &GeneralReviewer{cfg: cfg, inv: inv}, nil
}

// Name identifies the assistant in logs and attribution fields.
func (a *GeneralReviewer) Name() string {
	return a.cfg.Name
}

// Review scores the paper. The instruction's domain slot is filled
// with the publication's research topics.
func (a *GeneralReviewer) Review(ctx context.Context, pub *domain.Publication, triageQA string) (*ReviewResult, error) {
	instruction := format(a.cfg.Instruction, map[string]string{
		"domain": domainLabel(pub),
	})
	prompt := format(a.cfg.Prompt, reviewVars(pub, triageQA))

	parsed, err := a.inv.Invoke(ctx, a.cfg, instruction, prompt)
	if err != nil {
		return nil, err
	}
	return decodeReviewResult(parsed, a.cfg.Name), nil
}

// DomainExpert re-checks a previous verdict from one field's
// perspective. Its instruction makes it judge relevance first and pass
// the previous scores through with low confidence when the paper is
// outside its field.
type DomainExpert struct {
	cfg Config
	inv *Invoker
}

// NewDomainExpert resolves one expert kind from the registry.
func NewDomainExpert(reg Registry, inv *Invoker, kind Kind) (*DomainExpert, error) {
	cfg, err := reg.Resolve(kind)
	if err != nil {
		return nil, err
	}
	return &DomainExpert{cfg: cfg, inv: inv}, nil
}

// Experts builds the registered domain experts in roster order.
func Experts(reg Registry, inv *Invoker) ([]*DomainExpert, error) {
	var experts []*DomainExpert
	for _, kind := range reg.ExpertKinds() {
		expert, err := NewDomainExpert(reg, inv, kind)
		if err != nil {
			return nil, err
		}
		experts = append(experts, expert)
	}
	return experts, nil
}

// Name identifies the expert in logs and attribution fields.
func (a *DomainExpert) Name() string {
	return a.cfg.Name
}

// Review re-evaluates the paper given the previous reviewer's full
// JSON verdict as reference.
func (a *DomainExpert) Review(ctx context.Context, pub *domain.Publication, triageQA, previousJSON string) (*ReviewResult, error) {
	vars := reviewVars(pub, triageQA)
	vars["previous_review_json"] = previousJSON
	prompt := format(a.cfg.Prompt, vars)

	parsed, err := a.inv.Invoke(ctx, a.cfg, a.cfg.Instruction, prompt)
	if err != nil {
		return nil, err
	}
	return decodeReviewResult(parsed, a.cfg.Name), nil
}

func reviewVars(pub *domain.Publication, triageQA string) map[string]string {
	if strings.TrimSpace(triageQA) == "" {
		triageQA = noTriageContext
	}
	return map[string]string{
		"title":          pub.Title,
		"keywords":       strings.Join(pub.ResearchTopics, ", "),
		"abstract":       pub.Abstract,
		"conclusion":     pub.Conclusion,
		"triage_summary": triageQA,
	}
}

func domainLabel(pub *domain.Publication) string {
	if len(pub.ResearchTopics) > 0 {
		return strings.Join(pub.ResearchTopics, ", ")
	}
	return "academic research"
}
