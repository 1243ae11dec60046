package assistant

import (
	"fmt"
	"regexp"
)

// Kind identifies one assistant variant in the registry.
type Kind string

const (
	KindTopicSummary       Kind = "topic_summary"
	KindPaperTriage        Kind = "paper_triage"
	KindReviewerGeneral    Kind = "reviewer_general"
	KindExpertAlgorithm    Kind = "domain_reviewer_algorithm"
	KindExpertArchitecture Kind = "domain_reviewer_architecture"
	KindExpertCluster      Kind = "domain_reviewer_cluster"
	KindExpertChip         Kind = "domain_reviewer_chip"
	KindExpertNetwork      Kind = "domain_reviewer_network"
	KindDailyReport        Kind = "daily_report"
)

// expertRoster is the fixed order domain experts are consulted in.
var expertRoster = []Kind{
	KindExpertAlgorithm,
	KindExpertArchitecture,
	KindExpertCluster,
	KindExpertChip,
	KindExpertNetwork,
}

// Config is the static definition of one assistant: model routing plus
// instruction and prompt templates. Changing template text never
// requires touching orchestration code.
type Config struct {
	Name        string
	Model       string
	Instruction string
	Prompt      string
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// allowedPlaceholders lists the template variables each kind may use.
var allowedPlaceholders = map[Kind][]string{
	KindTopicSummary:       {"title", "keyword_list", "abstract", "conclusion"},
	KindPaperTriage:        {"title", "keywords", "abstract", "conclusion", "full_text", "sota_context"},
	KindReviewerGeneral:    {"domain", "title", "keywords", "abstract", "conclusion", "triage_summary"},
	KindExpertAlgorithm:    {"title", "keywords", "abstract", "conclusion", "triage_summary", "previous_review_json"},
	KindExpertArchitecture: {"title", "keywords", "abstract", "conclusion", "triage_summary", "previous_review_json"},
	KindExpertCluster:      {"title", "keywords", "abstract", "conclusion", "triage_summary", "previous_review_json"},
	KindExpertChip:         {"title", "keywords", "abstract", "conclusion", "triage_summary", "previous_review_json"},
	KindExpertNetwork:      {"title", "keywords", "abstract", "conclusion", "triage_summary", "previous_review_json"},
	KindDailyReport:        {"report_day", "top_k", "papers"},
}

// validate rejects empty templates and unknown placeholders at
// construction time instead of at call time.
func (c Config) validate(kind Kind) error {
	if c.Name == "" {
		return fmt.Errorf("assistant %s: empty name", kind)
	}
	if c.Model == "" {
		return fmt.Errorf("assistant %s: empty model", kind)
	}
	if c.Instruction == "" {
		return fmt.Errorf("assistant %s: empty instruction template", kind)
	}
	if c.Prompt == "" {
		return fmt.Errorf("assistant %s: empty prompt template", kind)
	}

	allowed := map[string]bool{}
	for _, name := range allowedPlaceholders[kind] {
		allowed[name] = true
	}
	for _, tpl := range []string{c.Instruction, c.Prompt} {
		for _, m := range placeholderPattern.FindAllStringSubmatch(tpl, -1) {
			if !allowed[m[1]] {
				return fmt.Errorf("assistant %s: unknown placeholder {%s}", kind, m[1])
			}
		}
	}
	return nil
}

// Registry maps assistant kinds to their validated configs.
type Registry struct {
	configs map[Kind]Config
}

// NewRegistry validates every config against its kind's placeholder
// set and returns the registry.
func NewRegistry(configs map[Kind]Config) (Registry, error) {
	for kind, cfg := range configs {
		if err := cfg.validate(kind); err != nil {
			return Registry{}, err
		}
	}
	return Registry{configs: configs}, nil
}

// Resolve returns the config for a kind or an error if it is absent.
func (r Registry) Resolve(kind Kind) (Config, error) {
	cfg, ok := r.configs[kind]
	if !ok {
		return Config{}, fmt.Errorf("assistant %s is not registered", kind)
	}
	return cfg, nil
}

// ExpertKinds returns the registered domain experts in roster order.
func (r Registry) ExpertKinds() []Kind {
	var kinds []Kind
	for _, kind := range expertRoster {
		if _, ok := r.configs[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// format substitutes {name} placeholders in a template. Unknown tokens
// are left alone so JSON examples in templates survive untouched.
func format(template string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		if v, ok := vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
