package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/llm"
)

// Config tunes generation.
type Config struct {
	Temperature float64

	OverviewTokens   int
	AssessmentTokens int
	LessonTokens     int
	PracticeTokens   int
	ReplyTokens      int
}

// DefaultConfig returns the token budgets used by the tutor.
func DefaultConfig() Config {
	return Config{
		Temperature:      0.7,
		OverviewTokens:   1000,
		AssessmentTokens: 1500,
		LessonTokens:     1500,
		PracticeTokens:   2000,
		ReplyTokens:      300,
	}
}

// Generator produces tutoring content. A nil provider runs fully offline
// on the fallback content.
type Generator struct {
	provider llm.Provider
	cache    Cache
	logger   *slog.Logger
	config   Config
}

// New creates a Generator. cache defaults to a MemoryCache and logger to
// a discarding logger.
func New(provider llm.Provider, cache Cache, logger *slog.Logger, cfg Config) *Generator {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{provider: provider, cache: cache, logger: logger, config: cfg}
}

// Online reports whether a provider is configured.
func (g *Generator) Online() bool { return g.provider != nil }

// TopicOverview returns the subtopic map for subject at level.
func (g *Generator) TopicOverview(ctx context.Context, subject string, level curriculum.Level) TopicOverview {
	key := CacheKey{Kind: KindOverview, Subject: subject, Level: level}
	var out TopicOverview
	ok := fetch(ctx, g, key, llm.PurposeOverview, OverviewSchema,
		overviewPrompt(subject, level), g.config.OverviewTokens, &out)
	if !ok {
		return FallbackOverview(subject)
	}
	return out
}

// AssessmentQuestions returns up to n placement questions for subject.
func (g *Generator) AssessmentQuestions(ctx context.Context, subject string, n int) []AssessmentQuestion {
	key := CacheKey{Kind: KindAssessment, Subject: subject, Count: n}
	var out assessmentSet
	ok := fetch(ctx, g, key, llm.PurposeAssessment, AssessmentSchema,
		assessmentPrompt(subject, n), g.config.AssessmentTokens, &out)
	if !ok {
		return FallbackAssessment(subject)
	}
	return out.Questions
}

// LessonContent returns teaching material for a subtopic.
func (g *Generator) LessonContent(ctx context.Context, subject, subtopic string, level curriculum.Level) LessonContent {
	key := CacheKey{Kind: KindLesson, Subject: subject, Subtopic: subtopic, Level: level}
	var out LessonContent
	ok := fetch(ctx, g, key, llm.PurposeLesson, LessonSchema,
		lessonPrompt(subject, subtopic, level), g.config.LessonTokens, &out)
	if !ok {
		return FallbackLesson(subject, subtopic)
	}
	return out
}

// PracticeProblems returns count problems for a subtopic.
func (g *Generator) PracticeProblems(ctx context.Context, subject, subtopic string, level curriculum.Level, count int) []PracticeProblem {
	key := CacheKey{Kind: KindPractice, Subject: subject, Subtopic: subtopic, Level: level, Count: count}
	var out problemSet
	ok := fetch(ctx, g, key, llm.PurposePractice, PracticeSchema,
		practicePrompt(subject, subtopic, level, count), g.config.PracticeTokens, &out)
	if !ok {
		return FallbackProblems(subtopic)
	}
	return out.Problems
}

// SocraticResponse answers a learner message with a guiding question.
func (g *Generator) SocraticResponse(ctx context.Context, r SocraticRequest) string {
	if text, ok := g.reply(ctx, llm.PurposeSocratic, socraticPrompt(r)); ok {
		return text
	}
	return FallbackSocratic(r.Subtopic)
}

// Hint writes a new hint once the problem's own hints are used up.
func (g *Generator) Hint(ctx context.Context, r HintRequest) string {
	if text, ok := g.reply(ctx, llm.PurposeHint, hintPrompt(r)); ok {
		return text
	}
	return HintsExhausted
}

// AlternativeExplanation re-explains a subtopic from a different angle.
func (g *Generator) AlternativeExplanation(ctx context.Context, r ExplanationRequest) string {
	if text, ok := g.reply(ctx, llm.PurposeExplanation, explanationPrompt(r)); ok {
		return text
	}
	return FallbackExplanation(r.Subtopic)
}

// ClearCache drops all cached content.
func (g *Generator) ClearCache(ctx context.Context) {
	if err := g.cache.Clear(ctx); err != nil {
		g.logger.WarnContext(ctx, "clearing content cache", "error", err)
	}
}

// reply generates free text. Replies are conversational and never cached.
func (g *Generator) reply(ctx context.Context, purpose, prompt string) (string, bool) {
	if g.provider == nil {
		return "", false
	}
	var out reply
	if err := g.call(ctx, purpose, ReplySchema, prompt, g.config.ReplyTokens, &out); err != nil {
		g.logger.WarnContext(ctx, "reply generation failed, using fallback", "purpose", purpose, "error", err)
		return "", false
	}
	if err := check(Kind(purpose), out); err != nil {
		g.logger.WarnContext(ctx, "empty reply, using fallback", "purpose", purpose)
		return "", false
	}
	return strings.TrimSpace(out.Text), true
}

func (g *Generator) call(ctx context.Context, purpose string, schema *llm.Schema, prompt string, maxTokens int, dest any) error {
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, purpose), llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(prompt),
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return fmt.Errorf("LLM generation failed: %w", err)
	}
	return resp.Decode(dest)
}

// fetch serves key from the cache or generates, validates and caches it.
// It reports false when the caller should use fallback content; fallbacks
// are never cached.
func fetch[T any](ctx context.Context, g *Generator, key CacheKey, purpose string, schema *llm.Schema, prompt string, maxTokens int, dest *T) bool {
	hit, err := g.cache.Get(ctx, key, dest)
	if err != nil {
		g.logger.WarnContext(ctx, "content cache read failed", "key", key.String(), "error", err)
	}
	if hit {
		return true
	}
	if g.provider == nil {
		return false
	}

	var fresh T
	if err := g.call(ctx, purpose, schema, prompt, maxTokens, &fresh); err != nil {
		g.logger.WarnContext(ctx, "content generation failed, using fallback", "kind", key.Kind, "subject", key.Subject, "error", err)
		return false
	}
	if err := check(key.Kind, &fresh); err != nil {
		g.logger.WarnContext(ctx, "generated content rejected, using fallback", "kind", key.Kind, "subject", key.Subject, "error", err)
		return false
	}

	if err := g.cache.Set(ctx, key, &fresh); err != nil {
		g.logger.WarnContext(ctx, "content cache write failed", "key", key.String(), "error", err)
	}
	*dest = fresh
	return true
}
