package evaluate

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/mentorly/internal/llm"
)

// VerdictSchema defines the JSON schema for an answer judgement.
var VerdictSchema = &llm.Schema{
	Name:        "answer-verdict",
	Description: "Judgement of a student's answer in a genetics tutoring session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "True if the answer demonstrates correct understanding",
			},
			"partial": map[string]any{
				"type":        "boolean",
				"description": "True if the answer shows some understanding but is incomplete",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Brief, encouraging feedback for the student (1-2 sentences)",
			},
			"misconception": map[string]any{
				"type":        "string",
				"description": "Misconception detected in the answer, or empty string if none",
			},
		},
		"required":             []any{"correct", "partial", "feedback", "misconception"},
		"additionalProperties": false,
	},
}

const judgeSystemPrompt = `You are evaluating a student's answer in a tutoring session. Be generous: if the student shows understanding of the concept even when the wording differs, mark it correct.`

// LLMJudge scores answers with an LLM provider.
type LLMJudge struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// NewLLMJudge creates a judge backed by provider.
func NewLLMJudge(provider llm.Provider) *LLMJudge {
	return &LLMJudge{provider: provider, maxTokens: 300}
}

type verdictOutput struct {
	Correct       bool   `json:"correct"`
	Partial       bool   `json:"partial"`
	Feedback      string `json:"feedback"`
	Misconception string `json:"misconception"`
}

// Judge implements Judge.
func (j *LLMJudge) Judge(ctx context.Context, req JudgeRequest) (Verdict, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeJudge)

	resp, err := j.provider.Generate(ctx, llm.Request{
		System:      judgeSystemPrompt,
		Messages:    llm.UserMessage(buildJudgeUserMessage(req)),
		Schema:      VerdictSchema,
		MaxTokens:   j.maxTokens,
		Temperature: j.temperature,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("judge answer: %w", err)
	}

	var out verdictOutput
	if err := resp.Decode(&out); err != nil {
		return Verdict{}, fmt.Errorf("parse verdict: %w", err)
	}

	return Verdict{
		Correct:       out.Correct,
		Partial:       out.Partial,
		Feedback:      strings.TrimSpace(out.Feedback),
		Misconception: strings.TrimSpace(out.Misconception),
	}, nil
}

func buildJudgeUserMessage(req JudgeRequest) string {
	var b strings.Builder

	topic := req.Topic
	if topic == "" {
		topic = "genetics"
	}
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	if req.Expected == "" || req.Expected == OpenEndedAnswer {
		b.WriteString("Expected answer: (open-ended, any thoughtful response)\n")
	} else {
		fmt.Fprintf(&b, "Expected answer: %s\n", req.Expected)
	}
	fmt.Fprintf(&b, "Student's answer: %s\n", req.Answer)

	b.WriteString(`
Instructions:
Decide whether the answer is correct, partially correct, or wrong.
Give brief, encouraging feedback. If the answer reveals a misconception, name it in one sentence; otherwise leave misconception empty.`)

	return b.String()
}
