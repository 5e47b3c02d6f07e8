package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleProfile() *learner.Profile {
	p := learner.NewProfile("ada", "Ada")
	p.CurrentLevel = curriculum.LevelIntermediate
	p.TotalSessions = 2
	p.UpdateMastery(curriculum.TopicMendelian, 80)
	p.UpdateMastery(curriculum.TopicPunnett, 30)
	p.AddInProgress(curriculum.TopicPedigree)

	acc := 0.5
	p.AddSessionSummary(session.Summary{
		SessionID: "s1", Topic: "Mendelian Inheritance",
		ProblemsAttempted: 2, ProblemsCorrect: 1, Accuracy: &acc,
		StartedAt: time.Now().Add(-time.Hour), Timestamp: time.Now(),
		Text: "Studied Mendelian Inheritance",
	})
	p.AddQuizScore(learner.QuizScore{Topic: curriculum.TopicMendelian, Subtopic: "Alleles", Correct: 2, Total: 3, Timestamp: time.Now()})
	p.AddAssessmentResult(learner.AssessmentRecord{
		Kind: "placement", Topic: "genetics", Level: curriculum.LevelIntermediate,
		Correct: 3, Total: 5, Gaps: []string{curriculum.TopicPedigree, curriculum.TopicMolecular}, Timestamp: time.Now(),
	})
	return p
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleProfile()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetMastery, SheetSessions, SheetQuizzes, SheetAssessments}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Field", "Value"}, summary[0])
	assert.Equal(t, []string{"Level", "Intermediate"}, summary[3])

	mastery, err := f.GetRows(SheetMastery)
	require.NoError(t, err)
	require.Len(t, mastery, 4)
	assert.Equal(t, []string{curriculum.TopicMendelian, "Mendelian Inheritance", "80", "yes", "no"}, mastery[1])
	assert.Equal(t, curriculum.TopicPunnett, mastery[2][0])
	assert.Equal(t, []string{curriculum.TopicPedigree, "Pedigree Analysis", "0", "no", "yes"}, mastery[3])

	sessions, err := f.GetRows(SheetSessions)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s1", sessions[1][0])
	assert.Equal(t, "0.5", sessions[1][7])

	assessments, err := f.GetRows(SheetAssessments)
	require.NoError(t, err)
	assert.Equal(t, "pedigree_analysis, molecular_genetics", assessments[1][5])
}

func TestSaveAs_EmptyProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ada.xlsx")
	require.NoError(t, SaveAs(path, learner.NewProfile("ada", "")))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSessions)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
