// Package export writes a learner's progress to an Excel workbook.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/learner"
	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetSummary     = "Summary"
	SheetMastery     = "Mastery"
	SheetSessions    = "Sessions"
	SheetQuizzes     = "Quizzes"
	SheetAssessments = "Assessments"
)

const timeLayout = time.DateTime

// Workbook builds the progress workbook for p. The caller closes it.
func Workbook(p *learner.Profile) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]any
	}{
		{SheetSummary, []string{"Field", "Value"}, summaryRows(p)},
		{SheetMastery, []string{"Topic", "Name", "Score", "Mastered", "In Progress"}, masteryRows(p)},
		{SheetSessions, []string{"Session", "Topic", "Started", "Ended", "Questions", "Attempted", "Correct", "Accuracy", "Summary"}, sessionRows(p)},
		{SheetQuizzes, []string{"Topic", "Subtopic", "Correct", "Total", "Taken"}, quizRows(p)},
		{SheetAssessments, []string{"Kind", "Topic", "Level", "Correct", "Total", "Gaps", "Strengths", "Taken"}, assessmentRows(p)},
	}
	for _, s := range sheets {
		if s.name != SheetSummary {
			if _, err := f.NewSheet(s.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
			}
		}
		if err := writeTable(f, s.name, s.headers, s.rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook for p and writes it to w.
func Write(w io.Writer, p *learner.Profile) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook for p to path.
func SaveAs(path string, p *learner.Profile) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func summaryRows(p *learner.Profile) [][]any {
	return [][]any{
		{"Learner", p.LearnerID},
		{"Name", p.Name},
		{"Level", p.CurrentLevel.DisplayName()},
		{"Sessions", p.TotalSessions},
		{"Created", p.CreatedAt.Format(timeLayout)},
		{"Last Topic", p.LastTopic},
		{"Topics Mastered", len(p.MasteredTopics())},
		{"Misconceptions", len(p.Knowledge.Misconceptions)},
		{"Last Session", p.LastSessionSummary},
	}
}

// masteryRows lists every scored or in-progress topic, highest score first.
func masteryRows(p *learner.Profile) [][]any {
	topics := map[string]bool{}
	for t := range p.Knowledge.TopicsMastered {
		topics[t] = true
	}
	for _, t := range p.Knowledge.TopicsInProgress {
		topics[t] = true
	}
	ids := make([]string, 0, len(topics))
	for t := range topics {
		ids = append(ids, t)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := p.Mastery(ids[i]), p.Mastery(ids[j])
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})

	inProgress := map[string]bool{}
	for _, t := range p.Knowledge.TopicsInProgress {
		inProgress[t] = true
	}
	rows := make([][]any, len(ids))
	for i, id := range ids {
		name := id
		if topic, ok := curriculum.GetTopic(id); ok {
			name = topic.Name
		}
		score := p.Mastery(id)
		rows[i] = []any{id, name, score, yesNo(score >= learner.MasteryThreshold), yesNo(inProgress[id])}
	}
	return rows
}

func sessionRows(p *learner.Profile) [][]any {
	rows := make([][]any, len(p.Progress.SessionSummaries))
	for i, s := range p.Progress.SessionSummaries {
		var acc any = ""
		if s.Accuracy != nil {
			acc = *s.Accuracy
		}
		rows[i] = []any{
			s.SessionID, s.Topic,
			s.StartedAt.Format(timeLayout), s.Timestamp.Format(timeLayout),
			s.QuestionsAsked, s.ProblemsAttempted, s.ProblemsCorrect, acc, s.Text,
		}
	}
	return rows
}

func quizRows(p *learner.Profile) [][]any {
	rows := make([][]any, len(p.Progress.QuizScores))
	for i, q := range p.Progress.QuizScores {
		rows[i] = []any{q.Topic, q.Subtopic, q.Correct, q.Total, q.Timestamp.Format(timeLayout)}
	}
	return rows
}

func assessmentRows(p *learner.Profile) [][]any {
	rows := make([][]any, len(p.Progress.AssessmentResults))
	for i, a := range p.Progress.AssessmentResults {
		rows[i] = []any{
			a.Kind, a.Topic, a.Level.DisplayName(), a.Correct, a.Total,
			strings.Join(a.Gaps, ", "), strings.Join(a.Strengths, ", "), a.Timestamp.Format(timeLayout),
		}
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
