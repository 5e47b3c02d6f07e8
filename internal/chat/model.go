package chat

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mentorly/internal/ui/components"
	"github.com/abhisek/mentorly/internal/ui/theme"
)

type stage int

const (
	stageLogin stage = iota
	stageNewID
	stageName
	stageChat
	stageDone
)

type speaker int

const (
	speakerTutor speaker = iota
	speakerLearner
	speakerSystem
	speakerError
)

type entry struct {
	who  speaker
	text string
}

// Model is the chat screen. Each learner message runs as one command and
// input is ignored until its reply arrives, so the tutor only ever sees one
// turn at a time.
type Model struct {
	ctx   context.Context
	tutor Tutor

	learnerID string
	name      string
	stage     stage

	input      components.TextInput
	spinner    spinner.Model
	transcript []entry
	busy       bool
	// scroll is how many lines the transcript is scrolled up from the
	// bottom.
	scroll int

	width  int
	height int

	farewell string
	err      error
}

// New creates the chat model. With an empty learnerID the screen first asks
// who is learning.
func New(ctx context.Context, t Tutor, learnerID, name string) Model {
	m := Model{
		ctx:       ctx,
		tutor:     t,
		learnerID: learnerID,
		name:      name,
		input:     components.NewTextInput("Type a message..."),
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(theme.Hint)),
	}
	if learnerID == "" {
		m.stage = stageLogin
		m.say(speakerSystem, "Enter your username (or 'new' to create):")
	} else {
		m.stage = stageChat
		m.busy = true
	}
	return m
}

// Farewell is the end-of-session report, empty if the session never ended.
func (m Model) Farewell() string { return m.farewell }

// Err is the error that stopped the session, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.input.Init()}
	if m.busy {
		cmds = append(cmds, m.start(), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case startedMsg:
		return m.handleTurn(msg.text, msg.err)

	case replyMsg:
		return m.handleTurn(msg.text, msg.err)

	case endedMsg:
		m.busy = false
		m.stage = stageDone
		if msg.err != nil {
			m.err = msg.err
			m.say(speakerError, msg.err.Error())
		} else {
			m.farewell = msg.text
			m.say(speakerTutor, msg.text)
		}
		m.say(speakerSystem, "Press any key to exit.")
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.stage == stageDone {
		return m, tea.Quit
	}

	switch msg.String() {
	case "ctrl+c":
		if m.stage == stageChat && !m.busy {
			m.say(speakerSystem, "Session interrupted.")
			return m.end()
		}
		if m.stage != stageChat {
			return m, tea.Quit
		}
		return m, nil
	case "pgup":
		m.scroll = min(m.scroll+m.pageSize(), m.maxScroll())
		return m, nil
	case "pgdown":
		m.scroll = max(m.scroll-m.pageSize(), 0)
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		return m.submit()
	}

	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles the login prompts, then chat messages.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Take())
	if text == "" {
		return m, nil
	}
	m.scroll = 0

	switch m.stage {
	case stageLogin:
		m.say(speakerLearner, text)
		if strings.EqualFold(text, "new") {
			m.stage = stageNewID
			m.say(speakerSystem, "Choose a username:")
			return m, nil
		}
		m.learnerID = text
		return m.begin()
	case stageNewID:
		m.say(speakerLearner, text)
		m.learnerID = text
		m.stage = stageName
		m.say(speakerSystem, "What's your name?")
		return m, nil
	case stageName:
		m.say(speakerLearner, text)
		m.name = text
		return m.begin()
	}

	m.say(speakerLearner, text)
	switch {
	case IsQuit(text):
		return m.end()
	case IsHelp(text):
		m.say(speakerSystem, HelpText)
		return m, nil
	}
	m.busy = true
	return m, tea.Batch(m.send(text), m.spinner.Tick)
}

func (m Model) begin() (tea.Model, tea.Cmd) {
	m.stage = stageChat
	m.busy = true
	return m, tea.Batch(m.start(), m.spinner.Tick)
}

func (m Model) end() (tea.Model, tea.Cmd) {
	m.busy = true
	ctx, t := context.WithoutCancel(m.ctx), m.tutor
	return m, tea.Batch(func() tea.Msg {
		text, err := t.EndSession(ctx)
		return endedMsg{text: text, err: err}
	}, m.spinner.Tick)
}

func (m Model) handleTurn(text string, err error) (tea.Model, tea.Cmd) {
	m.busy = false
	if err != nil {
		m.err = err
		m.stage = stageDone
		m.say(speakerError, err.Error())
		m.say(speakerSystem, "Press any key to exit.")
		return m, nil
	}
	m.say(speakerTutor, text)
	return m, nil
}

func (m Model) start() tea.Cmd {
	ctx, t, id, name := m.ctx, m.tutor, m.learnerID, m.name
	return func() tea.Msg {
		text, err := t.StartSession(ctx, id, name)
		return startedMsg{text: text, err: err}
	}
}

func (m Model) send(text string) tea.Cmd {
	ctx, t := m.ctx, m.tutor
	return func() tea.Msg {
		reply, err := t.HandleInput(ctx, text)
		return replyMsg{text: reply, err: err}
	}
}

func (m *Model) say(who speaker, text string) {
	m.transcript = append(m.transcript, entry{who: who, text: text})
}

// Run starts the chat program and returns the final model.
func Run(ctx context.Context, t Tutor, learnerID, name string) (Model, error) {
	p := tea.NewProgram(New(ctx, t, learnerID, name), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	return final.(Model), nil
}
