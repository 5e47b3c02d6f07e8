package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/mentorly/internal/curriculum"
)

const systemPrompt = `You are a patient tutor who teaches through the Socratic method.

Rules:
- Guide the learner to discover answers rather than stating them.
- Pitch vocabulary and depth at the learner's level.
- Prefer everyday analogies and concrete examples.
- Keep answers short and correct. When unsure, say so.
- Respond only with JSON matching the requested schema.`

const replyRules = `Reply as the tutor:
- If they show understanding, ask a deeper question or move forward.
- If they are confused, ask a simpler question or give a hint.
- If they are stuck, give one small piece of information and ask again.
- Keep it to 2-4 sentences and ask ONE question.
- Be encouraging but not patronizing.`

func overviewPrompt(subject string, level curriculum.Level) string {
	return fmt.Sprintf(`Create a learning overview for the subject: %q

Learner level: %s

Split the subject into 3-5 subtopics in the order they should be learned.`, subject, level)
}

func assessmentPrompt(subject string, n int) string {
	return fmt.Sprintf(`Create %d diagnostic questions for the subject: %q

They should span beginner to advanced so the answers reveal the learner's current level:
- 2 beginner questions (recall and understanding)
- 2 intermediate questions (application)
- 1 advanced question (analysis or synthesis)

Keep expected answers short. Use "open_ended" as the answer when any thoughtful response is acceptable.`, n, subject)
}

func lessonPrompt(subject, subtopic string, level curriculum.Level) string {
	return fmt.Sprintf(`Create teaching content.

Subject: %s
Subtopic: %s
Learner level: %s`, subject, subtopic, level)
}

func practicePrompt(subject, subtopic string, level curriculum.Level, count int) string {
	return fmt.Sprintf(`Create %d practice problems.

Subject: %s
Subtopic: %s
Difficulty: %s

Each problem needs three hints that guide without giving the answer away.`, count, subject, subtopic, level)
}

func socraticPrompt(r SocraticRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are teaching %s, specifically %s.\n", r.Subject, r.Subtopic)
	fmt.Fprintf(&b, "Learner level: %s\n\n", r.Level)
	if r.Context != "" {
		fmt.Fprintf(&b, "Recent conversation:\n%s\n\n", r.Context)
	}
	fmt.Fprintf(&b, "Learner just said: %q\n\n", r.Message)
	b.WriteString(replyRules)
	return b.String()
}

func hintPrompt(r HintRequest) string {
	return fmt.Sprintf(`The learner is working on this %s problem:
%s

Their answer was: %s
Correct answer: %s

They have already received %d hints.

Write one hint that points them in the right direction without giving the answer away, addresses any misconception visible in their answer, and uses simple language.`,
		r.Subject, r.Problem.Question, r.LearnerAnswer, r.Problem.Answer, r.HintsGiven)
}

func explanationPrompt(r ExplanationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A learner at %s level is struggling with %s in %s.\n", r.Level, r.Subtopic, r.Subject)
	if r.Question != "" {
		fmt.Fprintf(&b, "\nQuestion: %s\n", r.Question)
	}
	if r.Attempt > 1 {
		fmt.Fprintf(&b, "They have tried %d times.\n", r.Attempt)
	}
	b.WriteString(`
Give a brief alternative explanation (2-3 sentences) that approaches the idea from a different angle, uses a simple analogy or example, and breaks it into smaller parts.`)
	return b.String()
}
