package content

import "github.com/abhisek/mentorly/internal/llm"

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func strList(desc string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": desc}
}

// object requires every property, which strict structured output expects.
func object(props map[string]any) map[string]any {
	required := make([]any, 0, len(props))
	for name := range props {
		required = append(required, name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

var levelEnum = map[string]any{
	"type": "string",
	"enum": []any{"beginner", "intermediate", "advanced"},
}

// OverviewSchema describes a TopicOverview.
var OverviewSchema = &llm.Schema{
	Name:        "topic-overview",
	Description: "A learning overview of a subject split into ordered subtopics",
	Definition: object(map[string]any{
		"subject":             str("The subject as the learner named it"),
		"description":         str("One or two sentences on what the subject covers"),
		"learning_objectives": strList("3-5 things the learner will understand"),
		"subtopics": map[string]any{
			"type":        "array",
			"description": "3-5 subtopics in learning order",
			"items": object(map[string]any{
				"id":          str("snake_case identifier"),
				"name":        str("Short subtopic name"),
				"description": str("What the subtopic covers"),
				"order":       map[string]any{"type": "integer", "minimum": 1},
			}),
		},
		"prerequisites":           strList("Assumed prior knowledge"),
		"real_world_applications": strList("2-3 practical applications"),
	}),
}

// AssessmentSchema describes a set of placement questions.
var AssessmentSchema = &llm.Schema{
	Name:        "assessment-questions",
	Description: "Diagnostic questions spanning beginner to advanced",
	Definition: object(map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": object(map[string]any{
				"id":                 str("q1, q2, ..."),
				"level":              levelEnum,
				"question":           str("The question text"),
				"answer":             str(`Short expected answer, or "open_ended"`),
				"acceptable_answers": strList("Accepted variations of the answer"),
				"concept":            str("The concept being tested"),
			}),
		},
	}),
}

// LessonSchema describes LessonContent.
var LessonSchema = &llm.Schema{
	Name:        "lesson-content",
	Description: "Teaching material for one subtopic",
	Definition: object(map[string]any{
		"explanation":         str("Explanation pitched at the learner level, 2-3 paragraphs"),
		"key_concepts":        strList("3-5 main concepts"),
		"analogies":           strList("2-3 relatable analogies"),
		"examples":            strList("2-3 concrete examples"),
		"common_mistakes":     strList("2-3 common misconceptions"),
		"guiding_questions":   strList("3-4 Socratic questions that lead to discovery"),
		"check_understanding": strList("2-3 comprehension checks"),
	}),
}

// PracticeSchema describes a set of practice problems.
var PracticeSchema = &llm.Schema{
	Name:        "practice-problems",
	Description: "Practice problems with progressive hints",
	Definition: object(map[string]any{
		"problems": map[string]any{
			"type": "array",
			"items": object(map[string]any{
				"id":                 str("p1, p2, ..."),
				"question":           str("The problem statement"),
				"answer":             str("The correct answer"),
				"acceptable_answers": strList("Accepted variations of the answer"),
				"hints":              strList("Three hints, each more specific, none giving the answer away"),
				"explanation":        str("Full worked solution"),
				"concept":            str("The concept being tested"),
			}),
		},
	}),
}

// ReplySchema wraps a free-text tutor reply.
var ReplySchema = &llm.Schema{
	Name:        "tutor-reply",
	Description: "A short reply from the tutor to the learner",
	Definition: object(map[string]any{
		"text": str("The reply, plain text"),
	}),
}
