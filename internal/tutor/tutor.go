// Package tutor runs the tutoring conversation: it routes each learner
// message to the handler for the current session phase and keeps the
// learner profile up to date as the session progresses.
package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/mentorly/internal/content"
	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/evaluate"
	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/session"
	"github.com/abhisek/mentorly/internal/store"
)

// AssessmentSize is the number of questions asked when a subject is picked.
const AssessmentSize = 5

// PracticeSize is the number of problems in one practice set.
const PracticeSize = 3

// MasteryGain is added to the subject's mastery for each correct problem.
const MasteryGain = 15

// ContentSource produces the material the tutor teaches from. Its methods
// never fail; they fall back to static content instead.
type ContentSource interface {
	TopicOverview(ctx context.Context, subject string, level curriculum.Level) content.TopicOverview
	AssessmentQuestions(ctx context.Context, subject string, n int) []content.AssessmentQuestion
	LessonContent(ctx context.Context, subject, subtopic string, level curriculum.Level) content.LessonContent
	PracticeProblems(ctx context.Context, subject, subtopic string, level curriculum.Level, count int) []content.PracticeProblem
	SocraticResponse(ctx context.Context, r content.SocraticRequest) string
	Hint(ctx context.Context, r content.HintRequest) string
	AlternativeExplanation(ctx context.Context, r content.ExplanationRequest) string
}

// AnswerGrader grades free-text answers to generated questions.
type AnswerGrader interface {
	EvaluateAnswer(ctx context.Context, s evaluate.Submission) evaluate.Verdict
}

// Tutor is a single-learner conversation. It is not safe for concurrent
// use; one message is handled completely before the next.
type Tutor struct {
	content  ContentSource
	grader   AnswerGrader
	learners *learner.Manager
	events   store.EventRepo
	logger   *slog.Logger

	profile *learner.Profile
	sess    *session.State
	flow    flow
}

// flow is the orchestrator's working state for the current subject.
type flow struct {
	subject string
	// key names the subject in the profile: the curriculum topic id when
	// the subject matches one, otherwise the subject text.
	key      string
	overview content.TopicOverview

	questions       []content.AssessmentQuestion
	questionIdx     int
	assessmentStart int

	subtopicIdx int
	subtopic    content.Subtopic
	lesson      content.LessonContent
	covered     []string
	reviews     map[string]int

	problems   []content.PracticeProblem
	problemIdx int
	hintsGiven int
	setStart   int
}

// New creates a Tutor. events may be nil, in which case session lifecycle
// events are not recorded.
func New(cs ContentSource, grader AnswerGrader, learners *learner.Manager, events store.EventRepo, logger *slog.Logger) *Tutor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tutor{
		content:  cs,
		grader:   grader,
		learners: learners,
		events:   events,
		logger:   logger,
	}
}

// Session returns the active session, or nil.
func (t *Tutor) Session() *session.State { return t.sess }

// Profile returns the loaded learner profile, or nil.
func (t *Tutor) Profile() *learner.Profile { return t.profile }

// Subject returns the subject being studied, or "".
func (t *Tutor) Subject() string { return t.flow.subject }

// Phase returns the current phase, or PhaseStart without a session.
func (t *Tutor) Phase() session.Phase {
	if t.sess == nil {
		return session.PhaseStart
	}
	return t.sess.Phase
}

// StartSession loads or creates the learner and opens a session. Returning
// learners with a previous subject are offered to continue it.
func (t *Tutor) StartSession(ctx context.Context, learnerID, name string) (string, error) {
	t.flow = flow{}
	t.profile = nil

	p, err := t.learners.Get(ctx, learnerID)
	if err != nil {
		return "", fmt.Errorf("load learner: %w", err)
	}
	if p == nil {
		p = learner.NewProfile(learnerID, name)
	} else {
		p.TotalSessions++
	}
	if err := t.learners.Save(ctx, p); err != nil {
		return "", fmt.Errorf("save learner: %w", err)
	}
	t.profile = p
	t.sess = session.New(learnerID)

	var reply string
	if p.LastTopic != "" {
		t.sess.Phase = session.PhaseReturning
		reply = welcomeBack(p)
	} else {
		t.sess.Phase = session.PhaseTopicSelection
		reply = welcomeNew(p.Name)
	}

	t.logger.InfoContext(ctx, "session started",
		"learner", learnerID, "session", t.sess.ID, "phase", t.sess.Phase, "sessions", p.TotalSessions)
	t.recordEvent(ctx, store.SessionActionStart, t.sess.Summary())
	return reply, nil
}

// HandleInput routes one learner message to the current phase.
func (t *Tutor) HandleInput(ctx context.Context, msg string) (string, error) {
	if t.sess == nil || t.profile == nil {
		return "Please start a session first.", nil
	}
	t.sess.RecordExchange(session.RoleUser, msg)

	var (
		reply string
		err   error
	)
	switch t.sess.Phase {
	case session.PhaseReturning:
		reply, err = t.handleReturning(ctx, msg)
	case session.PhaseAssessment:
		reply, err = t.handleAssessment(ctx, msg)
	case session.PhaseTeaching:
		reply, err = t.handleTeaching(ctx, msg)
	case session.PhasePractice:
		reply, err = t.handlePractice(ctx, msg)
	case session.PhaseReview:
		reply, err = t.handleReview(ctx, msg)
	case session.PhaseStart, session.PhaseTopicSelection:
		reply, err = t.handleTopicSelection(ctx, msg)
	default:
		t.logger.WarnContext(ctx, "unknown phase, treating as topic selection", "phase", t.sess.Phase)
		reply, err = t.handleTopicSelection(ctx, msg)
	}
	if err != nil {
		return "", err
	}

	t.sess.RecordExchange(session.RoleAssistant, reply)
	return reply, nil
}

// EndSession folds the session into the profile, saves it and closes the
// session.
func (t *Tutor) EndSession(ctx context.Context) (string, error) {
	if t.sess == nil || t.profile == nil {
		return "No active session to end.", nil
	}

	sum := t.sess.Summary()
	sum.Text = summaryText(t.flow.subject, sum)
	t.profile.AddSessionSummary(sum)
	if err := t.learners.Save(ctx, t.profile); err != nil {
		return "", fmt.Errorf("save learner: %w", err)
	}

	t.logger.InfoContext(ctx, "session ended",
		"learner", t.profile.LearnerID, "session", sum.SessionID,
		"problems", sum.ProblemsAttempted, "correct", sum.ProblemsCorrect, "duration", sum.Duration())
	t.recordEvent(ctx, store.SessionActionEnd, sum)

	reply := farewell(t.flow.subject, t.profile.CurrentLevel, sum)
	t.sess = nil
	return reply, nil
}

func (t *Tutor) save(ctx context.Context) error {
	if err := t.learners.Save(ctx, t.profile); err != nil {
		return fmt.Errorf("save learner: %w", err)
	}
	return nil
}

func (t *Tutor) recordEvent(ctx context.Context, action string, sum session.Summary) {
	if t.events == nil {
		return
	}
	data := store.SessionEventData{
		SessionID:         sum.SessionID,
		LearnerID:         t.profile.LearnerID,
		Action:            action,
		Topic:             sum.Topic,
		Level:             string(t.profile.CurrentLevel),
		QuestionsAsked:    sum.QuestionsAsked,
		ProblemsAttempted: sum.ProblemsAttempted,
		ProblemsCorrect:   sum.ProblemsCorrect,
		DurationSecs:      int(sum.Duration().Seconds()),
	}
	if err := t.events.AppendSessionEvent(context.WithoutCancel(ctx), data); err != nil {
		t.logger.WarnContext(ctx, "recording session event", "action", action, "error", err)
	}
}

// subjectKey resolves free text to the profile key for the subject.
func subjectKey(subject string) string {
	if topic, ok := curriculum.MatchTopic(subject); ok {
		return topic.ID
	}
	return strings.ToLower(strings.TrimSpace(subject))
}

// level is the learner's current level.
func (t *Tutor) level() curriculum.Level {
	return t.profile.CurrentLevel
}

// recentContext renders the last n exchanges as "role: content" lines.
func (t *Tutor) recentContext(n int) string {
	recent := t.sess.RecentContext(n)
	lines := make([]string, len(recent))
	for i, ex := range recent {
		lines[i] = fmt.Sprintf("%s: %s", ex.Role, ex.Content)
	}
	return strings.Join(lines, "\n")
}
