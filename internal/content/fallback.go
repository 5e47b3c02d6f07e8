package content

import (
	"fmt"

	"github.com/abhisek/mentorly/internal/curriculum"
)

// Static replies used when the model cannot be reached.
const (
	HintsExhausted = "I've given all my hints! Would you like me to explain the answer? Say 'show answer' or keep trying."
)

// FallbackOverview is the three-step outline used for any subject.
func FallbackOverview(subject string) TopicOverview {
	return TopicOverview{
		Subject:            subject,
		Description:        fmt.Sprintf("Learning about %s", subject),
		LearningObjectives: []string{fmt.Sprintf("Understand the basics of %s", subject)},
		Subtopics: []Subtopic{
			{ID: "basics", Name: "Fundamentals", Description: fmt.Sprintf("Core concepts of %s", subject), Order: 1},
			{ID: "intermediate", Name: "Key Concepts", Description: fmt.Sprintf("Important ideas in %s", subject), Order: 2},
			{ID: "practice", Name: "Application", Description: fmt.Sprintf("Applying %s knowledge", subject), Order: 3},
		},
		Prerequisites:         []string{},
		RealWorldApplications: []string{},
	}
}

// FallbackAssessment asks five open-ended questions that probe prior
// knowledge, motivation, terminology, application and depth.
func FallbackAssessment(subject string) []AssessmentQuestion {
	q := func(id string, level curriculum.Level, text, concept string) AssessmentQuestion {
		return AssessmentQuestion{
			ID:                id,
			Level:             level,
			Question:          fmt.Sprintf(text, subject),
			Answer:            OpenEnded,
			AcceptableAnswers: []string{},
			Concept:           concept,
		}
	}
	return []AssessmentQuestion{
		q("q1", curriculum.LevelBeginner, "What do you already know about %s?", "prior_knowledge"),
		q("q2", curriculum.LevelBeginner, "Why are you interested in learning %s?", "motivation"),
		q("q3", curriculum.LevelIntermediate, "Can you describe any key concepts or terms related to %s?", "terminology"),
		q("q4", curriculum.LevelIntermediate, "Have you tried applying %s in any practical way?", "application"),
		q("q5", curriculum.LevelAdvanced, "What challenges or questions do you have about %s?", "depth"),
	}
}

// FallbackLesson opens a subtopic with three guiding questions.
func FallbackLesson(subject, subtopic string) LessonContent {
	return LessonContent{
		Explanation:    fmt.Sprintf("Let's explore %s in %s.", subtopic, subject),
		KeyConcepts:    []string{subtopic},
		Analogies:      []string{},
		Examples:       []string{},
		CommonMistakes: []string{},
		GuidingQuestions: []string{
			fmt.Sprintf("What do you think %s means?", subtopic),
			fmt.Sprintf("Why might %s be important in %s?", subtopic, subject),
			fmt.Sprintf("Can you think of an example of %s?", subtopic),
		},
		CheckUnderstanding: []string{},
	}
}

// FallbackProblems returns two open-ended problems with three hints each.
func FallbackProblems(subtopic string) []PracticeProblem {
	return []PracticeProblem{
		{
			ID:                "p1",
			Question:          fmt.Sprintf("Explain a key concept from %s in your own words.", subtopic),
			Answer:            OpenEnded,
			AcceptableAnswers: []string{},
			Hints: []string{
				"Think about the main ideas we discussed.",
				"Try to use an example to illustrate.",
				"What would you tell a friend about this?",
			},
			Explanation: fmt.Sprintf("This helps reinforce your understanding of %s.", subtopic),
			Concept:     subtopic,
		},
		{
			ID:                "p2",
			Question:          fmt.Sprintf("Give a real-world example of how %s applies in practice.", subtopic),
			Answer:            OpenEnded,
			AcceptableAnswers: []string{},
			Hints: []string{
				"Think about everyday situations.",
				"Consider professional applications.",
				"What problems does this help solve?",
			},
			Explanation: fmt.Sprintf("Connecting %s to real life deepens understanding.", subtopic),
			Concept:     subtopic,
		},
	}
}

// FallbackSocratic keeps the conversation going without the model.
func FallbackSocratic(subtopic string) string {
	return fmt.Sprintf("Interesting! Let's think about that together. How do you think it connects to %s?", subtopic)
}

// FallbackExplanation is used when no alternative explanation could be
// generated.
func FallbackExplanation(subtopic string) string {
	return fmt.Sprintf("Let's try %s from a different angle. Break it into the smallest idea you are sure about, then tell me what comes next.", subtopic)
}
