// Package content produces the lessons, questions and problems the tutor
// teaches from. Every generator method falls back to static content when
// the model is unavailable or returns something unusable.
package content

import "github.com/abhisek/mentorly/internal/curriculum"

// Kind names a generated payload. It is part of the cache key and of the
// ValidationError.
type Kind string

const (
	KindOverview   Kind = "overview"
	KindAssessment Kind = "assessment"
	KindLesson     Kind = "lesson"
	KindPractice   Kind = "practice"
)

// OpenEnded marks answers that are graded for effort, not content.
const OpenEnded = curriculum.OpenEnded

// Subtopic is one step in a topic overview.
type Subtopic struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// TopicOverview is the map of a subject the learner picked.
type TopicOverview struct {
	Subject               string     `json:"subject"`
	Description           string     `json:"description"`
	LearningObjectives    []string   `json:"learning_objectives"`
	Subtopics             []Subtopic `json:"subtopics" validate:"min=1,dive"`
	Prerequisites         []string   `json:"prerequisites"`
	RealWorldApplications []string   `json:"real_world_applications"`
}

// SubtopicNames lists subtopic names in order.
func (o TopicOverview) SubtopicNames() []string {
	names := make([]string, len(o.Subtopics))
	for i, s := range o.Subtopics {
		names[i] = s.Name
	}
	return names
}

// AssessmentQuestion is a generated placement question.
type AssessmentQuestion struct {
	ID                string           `json:"id"`
	Level             curriculum.Level `json:"level" validate:"oneof=beginner intermediate advanced"`
	Question          string           `json:"question" validate:"required"`
	Answer            string           `json:"answer" validate:"required"`
	AcceptableAnswers []string         `json:"acceptable_answers"`
	Concept           string           `json:"concept"`
}

// LessonContent is the teaching material for one subtopic.
type LessonContent struct {
	Explanation        string   `json:"explanation" validate:"required"`
	KeyConcepts        []string `json:"key_concepts"`
	Analogies          []string `json:"analogies"`
	Examples           []string `json:"examples"`
	CommonMistakes     []string `json:"common_mistakes"`
	GuidingQuestions   []string `json:"guiding_questions"`
	CheckUnderstanding []string `json:"check_understanding"`
}

// FirstGuidingQuestion returns the opening question, or "" if none.
func (l LessonContent) FirstGuidingQuestion() string {
	if len(l.GuidingQuestions) == 0 {
		return ""
	}
	return l.GuidingQuestions[0]
}

// PracticeProblem is one exercise with graded hints.
type PracticeProblem struct {
	ID                string   `json:"id"`
	Question          string   `json:"question" validate:"required"`
	Answer            string   `json:"answer" validate:"required"`
	AcceptableAnswers []string `json:"acceptable_answers"`
	Hints             []string `json:"hints"`
	Explanation       string   `json:"explanation"`
	Concept           string   `json:"concept"`
}

// SocraticRequest is the context for a guided reply during teaching.
type SocraticRequest struct {
	Subject  string
	Subtopic string
	Message  string
	// Context is the rendered recent conversation.
	Context string
	Level   curriculum.Level
}

// HintRequest asks for a fresh hint once the predefined ones are used up.
type HintRequest struct {
	Subject       string
	Problem       PracticeProblem
	LearnerAnswer string
	HintsGiven    int
}

// ExplanationRequest asks for a different angle on something the learner
// is struggling with.
type ExplanationRequest struct {
	Subject  string
	Subtopic string
	Question string
	Attempt  int
	Level    curriculum.Level
}

// arrays are wrapped in an object so every schema has an object root.
type assessmentSet struct {
	Questions []AssessmentQuestion `json:"questions" validate:"min=1,dive"`
}

type problemSet struct {
	Problems []PracticeProblem `json:"problems" validate:"min=1,dive"`
}

type reply struct {
	Text string `json:"text" validate:"required"`
}
