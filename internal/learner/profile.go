// Package learner manages durable cross-session learner profiles.
package learner

import (
	"slices"
	"time"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/diagnostic"
	"github.com/abhisek/mentorly/internal/session"
	"github.com/samber/lo"
)

// MasteryThreshold is the score at which a topic counts as mastered.
const MasteryThreshold = 70

// Knowledge tracks what the learner knows.
type Knowledge struct {
	TopicsMastered   map[string]int `json:"topics_mastered"`
	TopicsInProgress []string       `json:"topics_in_progress"`
	Misconceptions   []string       `json:"misconceptions"`
	Strengths        []string       `json:"strengths"`
}

// QuizScore records the outcome of one practice set.
type QuizScore struct {
	Topic     string    `json:"topic"`
	Subtopic  string    `json:"subtopic,omitempty"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// AssessmentRecord records one completed assessment.
type AssessmentRecord struct {
	Kind      string           `json:"kind"`
	Topic     string           `json:"topic"`
	Level     curriculum.Level `json:"level"`
	Correct   int              `json:"correct"`
	Total     int              `json:"total"`
	Gaps      []string         `json:"knowledge_gaps,omitempty"`
	Strengths []string         `json:"strengths,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// Progress is the append-only learning history.
type Progress struct {
	AssessmentResults []AssessmentRecord `json:"assessment_results"`
	QuizScores        []QuizScore        `json:"quiz_scores"`
	SessionSummaries  []session.Summary  `json:"session_summaries"`
}

// Profile is the durable state of one learner.
type Profile struct {
	LearnerID          string           `json:"learner_id"`
	Name               string           `json:"name"`
	CurrentLevel       curriculum.Level `json:"current_level"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at,omitzero"`
	TotalSessions      int              `json:"total_sessions"`
	Knowledge          Knowledge        `json:"knowledge"`
	Progress           Progress         `json:"progress"`
	LastTopic          string           `json:"last_topic,omitempty"`
	LastSessionSummary string           `json:"last_session_summary,omitempty"`
}

// NewProfile returns a beginner profile.
func NewProfile(id, name string) *Profile {
	if name == "" {
		name = id
	}
	return &Profile{
		LearnerID:    id,
		Name:         name,
		CurrentLevel: curriculum.LevelBeginner,
		CreatedAt:    time.Now(),
		Knowledge: Knowledge{
			TopicsMastered: map[string]int{},
		},
	}
}

// Mastery returns the stored score for topic.
func (p *Profile) Mastery(topic string) int {
	return p.Knowledge.TopicsMastered[topic]
}

// UpdateMastery stores score clamped to [0,100]. A score at or above the
// mastery threshold takes the topic out of progress.
func (p *Profile) UpdateMastery(topic string, score int) {
	if p.Knowledge.TopicsMastered == nil {
		p.Knowledge.TopicsMastered = map[string]int{}
	}
	p.Knowledge.TopicsMastered[topic] = min(100, max(0, score))
	if score >= MasteryThreshold {
		p.Knowledge.TopicsInProgress = lo.Without(p.Knowledge.TopicsInProgress, topic)
	}
}

// MasteredTopics lists topics at or above the threshold.
func (p *Profile) MasteredTopics() []string {
	var out []string
	for _, t := range curriculum.Topics() {
		if p.Mastery(t.ID) >= MasteryThreshold {
			out = append(out, t.ID)
		}
	}
	var extra []string
	for topic, score := range p.Knowledge.TopicsMastered {
		if score >= MasteryThreshold && !lo.Contains(out, topic) {
			extra = append(extra, topic)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// AddInProgress marks topic as being studied unless already mastered.
func (p *Profile) AddInProgress(topic string) {
	if topic == "" || p.Mastery(topic) >= MasteryThreshold {
		return
	}
	if !lo.Contains(p.Knowledge.TopicsInProgress, topic) {
		p.Knowledge.TopicsInProgress = append(p.Knowledge.TopicsInProgress, topic)
	}
}

// AddMisconception records a misconception once.
func (p *Profile) AddMisconception(m string) {
	if m == "" || lo.Contains(p.Knowledge.Misconceptions, m) {
		return
	}
	p.Knowledge.Misconceptions = append(p.Knowledge.Misconceptions, m)
}

// AddStrength records a strength once.
func (p *Profile) AddStrength(s string) {
	if s == "" || lo.Contains(p.Knowledge.Strengths, s) {
		return
	}
	p.Knowledge.Strengths = append(p.Knowledge.Strengths, s)
}

// AddSessionSummary appends a summary and remembers its text.
func (p *Profile) AddSessionSummary(s session.Summary) {
	p.Progress.SessionSummaries = append(p.Progress.SessionSummaries, s)
	p.LastSessionSummary = s.Text
}

// AddQuizScore appends a practice result.
func (p *Profile) AddQuizScore(q QuizScore) {
	p.Progress.QuizScores = append(p.Progress.QuizScores, q)
}

// AddAssessmentResult appends an assessment record.
func (p *Profile) AddAssessmentResult(r AssessmentRecord) {
	p.Progress.AssessmentResults = append(p.Progress.AssessmentResults, r)
}

// ApplyPlacement folds a placement quiz into the profile: the level is
// adopted, gaps are noted as misconceptions and put in progress, and
// strong topics are recorded.
func (p *Profile) ApplyPlacement(s diagnostic.Summary) {
	p.CurrentLevel = s.Level
	for _, gap := range s.KnowledgeGaps {
		p.AddMisconception("gap in " + gap)
		p.AddInProgress(gap)
	}
	for _, strength := range s.Strengths {
		p.AddStrength(strength)
	}
	p.AddAssessmentResult(AssessmentRecord{
		Kind:      "placement",
		Topic:     "genetics",
		Level:     s.Level,
		Correct:   s.CorrectAnswers,
		Total:     s.QuestionsAnswered,
		Gaps:      s.KnowledgeGaps,
		Strengths: s.Strengths,
		Timestamp: time.Now(),
	})
	if p.LastTopic == "" {
		p.LastTopic = s.RecommendedTopic
	}
}
