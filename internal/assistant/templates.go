package assistant

import "fmt"

// reviewJSONShape is the score payload every reviewer must emit.
const reviewJSONShape = `{
  "score": [
    {"innovation": 7.0, "reason": "..."},
    {"performance": 5.0, "reason": "..."},
    {"simplicity": 6.0, "reason": "..."},
    {"reusability": 8.0, "reason": "..."},
    {"authority": 7.0, "reason": "..."}
  ],
  "recommend": "yes",
  "reason": "...",
  "who_should_read": "...",
  "confidence": 0.85
}`

const topicInstruction = `You are an expert academic paper analyst. Read the provided paper ` +
	`information (title, keywords if any, abstract, conclusion) and extract: ` +
	`1. Keywords: the core terms summarizing the paper's subject. ` +
	`2. Research topics: the top 3 concrete topics or directions the paper studies, ` +
	`more specific than the keywords (a keyword might be "caching" while the topic is ` +
	`"compression methods for key-value caches"). Return the result as JSON.`

const topicPrompt = `Read the following paper information:
Title: {title}
Keywords: {keyword_list}
Abstract: {abstract}
Conclusion: {conclusion}
Extract the top 3 concrete research topics. Keep technical terms as-is and stay concise.
Return ONLY a JSON object in exactly this shape, with no extra commentary:
{
  "keywords": ["keyword 1", "keyword 2", "keyword 3"],
  "research_topics": ["topic 1", "topic 2", "topic 3"]
}`

const triageInstruction = `You are a senior academic reviewer familiar with current research in both ` +
	`academia and industry. Given a paper's core information, systematically answer these six questions: ` +
	`1. What core problem does the paper try to solve? ` +
	`2. What are its main technical contributions? ` +
	`3. Which of its proposals or innovations deserve attention? ` +
	`4. Does it compare against current state-of-the-art results, and with what outcome? ` +
	`5. Who are the authors and their institutions? List them as completely as possible. ` +
	`6. Assess the academic or industrial influence of the authors and institutions. ` +
	`Answer accurately and stay faithful to the paper content.`

const triagePrompt = `Answer the six questions for the paper below and return a well-formed JSON object.
Title: {title}
Keywords: {keywords}
Abstract: {abstract}
Conclusion: {conclusion}
Full text: {full_text}
To help you answer, here is state-of-the-art context for this field:
{sota_context}

Requirements:
- Return strictly JSON with no extra text or comments.
- Fill each answer into the corresponding field of this template:
{
  "core_problem": "...",
  "technical_contributions": "...",
  "innovations_and_proposals": ["...", "..."],
  "sota_comparison": "...",
  "authors_and_affiliations": {"authors": ["..."], "institutions": ["..."]},
  "influence_assessment": "..."
}`

const generalReviewerInstruction = `As a senior expert in {domain}, score the paper on five dimensions ` +
	`from 1.0 to 10.0 (two decimals allowed), judging strictly from the provided content: ` +
	`1. Technical innovation: how novel the approach is relative to existing work; award 8+ only when it ` +
	`opens a new direction or research paradigm. ` +
	`2. Performance improvement: significance of gains on recognized benchmarks versus prior best results, ` +
	`and whether gains reproduce across tasks. ` +
	`3. Theoretical or engineering simplicity: whether the method reduces complexity, parameters, memory, ` +
	`or training cost while holding or improving quality. ` +
	`4. Reusability and impact: whether the structure or algorithm transfers to other tasks and is likely ` +
	`to be adopted; overly bespoke methods score low. ` +
	`5. Author and institutional authority: the authors' track record and the institution's research standing. ` +
	`Then state whether you recommend reading the paper ("yes" or "no") with a reason; a pure information ` +
	`roundup with no added value should score low and not be recommended. Finally report your confidence in ` +
	`this review from 0.0 to 1.0. Output strictly this JSON shape with no extra text:
` + reviewJSONShape

const generalReviewerPrompt = `Evaluate the paper below following your instructions.
Title: {title}
Keywords: {keywords}
Abstract: {abstract}
Conclusion: {conclusion}
Key triage summary and Q&A: {triage_summary}
Return the result strictly in the required JSON shape.`

const expertPromptTemplate = `Complete your review based on the paper information and the existing review.
Paper:
Title: {title}
Keywords: {keywords}
Abstract: {abstract}
Conclusion: {conclusion}
Key triage summary and Q&A: {triage_summary}
Existing review for reference:
{previous_review_json}
Judge domain relevance first, then confirm or revise the scores.
Return strictly this JSON shape with no extra text:
` + reviewJSONShape

const dailyReportInstruction = `You are an editor producing a daily research digest. Given a list of ` +
	`scored papers, write a narrative report: group papers by theme, call out the strongest results with ` +
	`their weighted scores, and say who should pay attention. Return JSON: {"report": "..."} and nothing else.`

const dailyReportPrompt = `Write the daily digest for {report_day} covering the top {top_k} papers below:
{papers}
Return strictly {"report": "..."} as JSON.`

// expertInstruction renders the shared domain-expert protocol for one
// field of expertise.
func expertInstruction(field string) string {
	return fmt.Sprintf(`You are a senior expert in %s with broad research and reviewing experience. `+
		`You receive a paper's core information plus a general AI reviewer's preliminary scores. `+
		`Proceed as follows: `+
		`1. Relevance: decide whether the paper is closely related to %s. If it is not, do NOT modify the `+
		`existing scores; return them unchanged and report a low confidence (for example 0.4) noting the `+
		`paper is outside your field. `+
		`2. Re-check and adjust: if the paper is in your field, review the general scores and make measured `+
		`corrections backed by your expertise; avoid large changes without strong reasons, and explain any `+
		`change briefly. The dimensions are innovation, performance, simplicity, reusability, and authority. `+
		`3. Recommendation and confidence: keep or revise the recommendation and target-reader advice, then `+
		`report your overall confidence from 0.0 to 1.0. `+
		`Output strictly the required JSON shape, machine-parseable, with no extra commentary.`,
		field, field)
}

// Defaults builds the standard assistant registry for the given model
// identifier.
func Defaults(model string) (Registry, error) {
	configs := map[Kind]Config{
		KindTopicSummary: {
			Name:        "topic_summary",
			Model:       model,
			Instruction: topicInstruction,
			Prompt:      topicPrompt,
		},
		KindPaperTriage: {
			Name:        "paper_triage",
			Model:       model,
			Instruction: triageInstruction,
			Prompt:      triagePrompt,
		},
		KindReviewerGeneral: {
			Name:        "reviewer_general",
			Model:       model,
			Instruction: generalReviewerInstruction,
			Prompt:      generalReviewerPrompt,
		},
		KindDailyReport: {
			Name:        "daily_report",
			Model:       model,
			Instruction: dailyReportInstruction,
			Prompt:      dailyReportPrompt,
		},
	}

	expertFields := map[Kind]string{
		KindExpertAlgorithm:    "computer software and algorithms research",
		KindExpertArchitecture: "computer architecture and systems design",
		KindExpertCluster:      "distributed systems and cluster computing",
		KindExpertChip:         "chip design and hardware acceleration",
		KindExpertNetwork:      "computer networking research",
	}
	for kind, field := range expertFields {
		configs[kind] = Config{
			Name:        string(kind),
			Model:       model,
			Instruction: expertInstruction(field),
			Prompt:      expertPromptTemplate,
		}
	}

	return NewRegistry(configs)
}
