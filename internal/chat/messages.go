package chat

// startedMsg carries the welcome once the session is open.
type startedMsg struct {
	text string
	err  error
}

// replyMsg carries the tutor's reply to one learner message.
type replyMsg struct {
	text string
	err  error
}

// endedMsg carries the farewell once progress is saved.
type endedMsg struct {
	text string
	err  error
}
