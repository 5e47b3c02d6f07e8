package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/session"
)

// fakeTutor echoes messages and records the calls it receives.
type fakeTutor struct {
	startedWith [2]string
	inputs      []string
	ended       bool
	err         error
	phase       session.Phase
}

func (f *fakeTutor) StartSession(_ context.Context, id, name string) (string, error) {
	f.startedWith = [2]string{id, name}
	f.phase = session.PhaseTopicSelection
	return "Hi " + id + "! What would you like to learn?", nil
}

func (f *fakeTutor) HandleInput(_ context.Context, msg string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.inputs = append(f.inputs, msg)
	return "echo: " + msg, nil
}

func (f *fakeTutor) EndSession(context.Context) (string, error) {
	f.ended = true
	return "Your progress has been saved. See you next time!", nil
}

func (f *fakeTutor) Phase() session.Phase { return f.phase }
func (f *fakeTutor) Subject() string      { return "genetics" }
func (f *fakeTutor) Profile() *learner.Profile {
	return learner.NewProfile("ada", "Ada")
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// typeText sends each rune of text followed by enter and returns the
// command produced by enter.
func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(keyPress(r))
		m = next.(Model)
	}
	next, cmd := m.Update(specialKey(tea.KeyEnter))
	return next.(Model), cmd
}

// drain runs cmd, expanding batches, and returns every message produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds the tutor messages from cmd back into the model.
func deliver(m Model, cmd tea.Cmd) Model {
	for _, msg := range drain(cmd) {
		switch msg.(type) {
		case startedMsg, replyMsg, endedMsg:
			next, _ := m.Update(msg)
			m = next.(Model)
		}
	}
	return m
}

func lastEntry(m Model) entry {
	return m.transcript[len(m.transcript)-1]
}

func TestModel_StartsSessionForKnownLearner(t *testing.T) {
	ft := &fakeTutor{}
	m := New(context.Background(), ft, "ada", "Ada")
	assert.True(t, m.busy)
	assert.Equal(t, stageChat, m.stage)

	m = deliver(m, m.start())
	assert.Equal(t, [2]string{"ada", "Ada"}, ft.startedWith)
	assert.False(t, m.busy)
	assert.Equal(t, speakerTutor, lastEntry(m).who)
	assert.Contains(t, lastEntry(m).text, "Hi ada")
}

func TestModel_LoginNewLearner(t *testing.T) {
	ft := &fakeTutor{}
	m := New(context.Background(), ft, "", "")
	require.Equal(t, stageLogin, m.stage)

	m, _ = typeText(t, m, "new")
	assert.Equal(t, stageNewID, m.stage)
	m, _ = typeText(t, m, "grace")
	assert.Equal(t, stageName, m.stage)

	m, cmd := typeText(t, m, "Grace")
	assert.Equal(t, stageChat, m.stage)
	assert.True(t, m.busy)

	deliver(m, cmd)
	assert.Equal(t, [2]string{"grace", "Grace"}, ft.startedWith)
}

func TestModel_LoginExistingLearner(t *testing.T) {
	ft := &fakeTutor{}
	m := New(context.Background(), ft, "", "")

	m, cmd := typeText(t, m, "ada")
	deliver(m, cmd)
	assert.Equal(t, [2]string{"ada", ""}, ft.startedWith)
}

func TestModel_SendsMessageAndShowsReply(t *testing.T) {
	ft := &fakeTutor{}
	m := deliver(New(context.Background(), ft, "ada", "Ada"), nil)
	m.busy = false

	m, cmd := typeText(t, m, "genetics")
	assert.True(t, m.busy)
	assert.Equal(t, speakerLearner, lastEntry(m).who)
	assert.Empty(t, m.input.Value())

	m = deliver(m, cmd)
	assert.Equal(t, []string{"genetics"}, ft.inputs)
	assert.False(t, m.busy)
	assert.Equal(t, "echo: genetics", lastEntry(m).text)
}

func TestModel_IgnoresInputWhileBusy(t *testing.T) {
	ft := &fakeTutor{}
	m := New(context.Background(), ft, "ada", "Ada")
	require.True(t, m.busy)

	next, _ := m.Update(keyPress('x'))
	m = next.(Model)
	assert.Empty(t, m.input.Value())

	next, cmd := m.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Empty(t, ft.inputs)
	_ = next
}

func TestModel_HelpIsHandledLocally(t *testing.T) {
	ft := &fakeTutor{}
	m := New(context.Background(), ft, "ada", "Ada")
	m.busy = false

	m, cmd := typeText(t, m, "help")
	assert.Nil(t, cmd)
	assert.Empty(t, ft.inputs)
	assert.Equal(t, HelpText, lastEntry(m).text)
}

func TestModel_QuitEndsSession(t *testing.T) {
	ft := &fakeTutor{}
	m := New(context.Background(), ft, "ada", "Ada")
	m.busy = false

	m, cmd := typeText(t, m, "quit")
	m = deliver(m, cmd)
	assert.True(t, ft.ended)
	assert.Equal(t, stageDone, m.stage)
	assert.Contains(t, m.Farewell(), "progress has been saved")

	_, cmd = m.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CtrlCEndsSession(t *testing.T) {
	ft := &fakeTutor{}
	m := New(context.Background(), ft, "ada", "Ada")
	m.busy = false

	next, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	m = deliver(next.(Model), cmd)
	assert.True(t, ft.ended)
	assert.Equal(t, stageDone, m.stage)
}

func TestModel_TutorErrorStops(t *testing.T) {
	ft := &fakeTutor{err: errors.New("disk full")}
	m := New(context.Background(), ft, "ada", "Ada")
	m.busy = false

	m, cmd := typeText(t, m, "hello")
	m = deliver(m, cmd)
	assert.Equal(t, stageDone, m.stage)
	assert.EqualError(t, m.Err(), "disk full")
}

func TestModel_View(t *testing.T) {
	ft := &fakeTutor{}
	m := deliver(New(context.Background(), ft, "ada", "Ada"), nil)
	m.busy = false
	m.stage = stageChat
	ft.phase = session.PhaseTeaching
	m.say(speakerTutor, "Let's explore **genetics**.")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	content := m.render()
	assert.Contains(t, content, "Mentorly")
	assert.Contains(t, content, "genetics")
	assert.NotContains(t, content, "**")
}

func TestModel_ViewTooSmall(t *testing.T) {
	m := New(context.Background(), &fakeTutor{}, "", "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, next.(Model).render(), "Terminal too small")
}

func scrolledModel(t *testing.T, lines int) Model {
	t.Helper()
	m := New(context.Background(), &fakeTutor{}, "", "")
	for i := range lines {
		m.say(speakerSystem, fmt.Sprintf("line %d", i))
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	return next.(Model)
}

func TestModel_Scroll(t *testing.T) {
	m := scrolledModel(t, 50)

	bottom := m.render()
	next, _ := m.Update(specialKey(tea.KeyPgUp))
	m = next.(Model)
	assert.Positive(t, m.scroll)
	assert.NotEqual(t, bottom, m.render())

	next, _ = m.Update(specialKey(tea.KeyPgDown))
	m = next.(Model)
	assert.Zero(t, m.scroll)
	assert.Equal(t, bottom, m.render())
}

func TestModel_ScrollStopsAtTop(t *testing.T) {
	m := scrolledModel(t, 30)

	for range 20 {
		next, _ := m.Update(specialKey(tea.KeyPgUp))
		m = next.(Model)
	}
	assert.Equal(t, m.maxScroll(), m.scroll)
	assert.Contains(t, m.render(), "line 0")

	top := m.render()
	next, _ := m.Update(specialKey(tea.KeyPgDown))
	m = next.(Model)
	assert.Equal(t, max(m.maxScroll()-m.pageSize(), 0), m.scroll)
	assert.NotEqual(t, top, m.render())
}

func TestModel_ScrollShortTranscript(t *testing.T) {
	m := scrolledModel(t, 2)
	next, _ := m.Update(specialKey(tea.KeyPgUp))
	assert.Zero(t, next.(Model).scroll)
}

func TestEmphasize(t *testing.T) {
	out := emphasize("a **b** c **d**")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "b")
	assert.Contains(t, out, "d")
}
