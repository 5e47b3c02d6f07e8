package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/mentorly/internal/content"
	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/session"
)

func welcomeNew(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`Hi %s! I'm your personal learning guide.

I can help you learn about ANY topic through questions and exploration. I use the Socratic method - which means I'll guide you to discover answers yourself rather than just telling you.

**What would you like to learn about today?**

You can say things like:
- "I want to learn Python programming"
- "Teach me about photosynthesis"
- "Help me understand World War 2"
- "I'd like to learn calculus"

What subject interests you?`, name)
}

func welcomeBack(p *learner.Profile) string {
	return fmt.Sprintf(`Welcome back, %s!

Last time you were learning about **%s** (at %s level).

What would you like to do?
1. **Continue** with %s
2. **Start fresh** with a new topic

Just type 'continue' or tell me what new topic you'd like to explore!`, p.Name, p.LastTopic, p.CurrentLevel, p.LastTopic)
}

const askSubject = "What subject would you like to learn about?"

func subjectIntro(subject string, overview content.TopicOverview, first string) string {
	var list strings.Builder
	for i, name := range overview.SubtopicNames() {
		if i > 0 {
			list.WriteByte('\n')
		}
		fmt.Fprintf(&list, "  %d. %s", i+1, name)
	}
	return fmt.Sprintf(`Great choice! Let's explore **%s**.

%s

Here's what we'll cover:
%s

First, let me ask you a few questions to understand what you already know. This helps me tailor the lessons to your level.

Ready? Here's the first question:

**%s**`, subject, overview.Description, list.String(), first)
}

func acknowledge(correct, partial bool) string {
	switch {
	case correct:
		return "Nice! "
	case partial:
		return "You're on the right track. "
	default:
		return "That's okay - this helps me understand where you're at. "
	}
}

func nextQuestion(ack, question string) string {
	return fmt.Sprintf("%s\n\nNext question:\n\n**%s**", ack, question)
}

var levelMessages = map[curriculum.Level]string{
	curriculum.LevelBeginner:     "Let's start from the foundations and build up your understanding step by step.",
	curriculum.LevelIntermediate: "You have some background here! Let's deepen your understanding.",
	curriculum.LevelAdvanced:     "Impressive! You already know quite a bit. Let's explore some advanced concepts.",
}

func assessmentComplete(level curriculum.Level) string {
	return fmt.Sprintf(`Assessment complete! Based on your answers, you're at a **%s** level.

%s

Ready to begin? Just say **'yes'** or ask any questions you have!`, level, levelMessages[level])
}

func lessonStart(name, question string) string {
	return fmt.Sprintf("Let's start with **%s**.\n\n%s", name, question)
}

func lessonNext(st content.Subtopic, question string) string {
	return fmt.Sprintf("Great progress! Now let's explore **%s**.\n\n%s\n\n%s", st.Name, st.Description, question)
}

func subtopicsDone(subject string) string {
	return fmt.Sprintf(`You've covered all the main subtopics of %s!

Would you like to:
- Try some **practice** problems
- **Review** any topic
- Learn a **new subject**

What would you like to do?`, subject)
}

func practiceStart(subtopic, question string) string {
	return fmt.Sprintf(`Let's practice what you've learned about **%s**!

**Problem 1:**
%s

Take your time. If you get stuck, just say **'hint'**.`, subtopic, question)
}

func problemPrompt(n int, question string) string {
	return fmt.Sprintf("**Problem %d:**\n%s\n\nTake your time. Say **'hint'** if you need help.", n, question)
}

func hintReply(hint string) string {
	return fmt.Sprintf("Here's a hint: %s\n\nTry again!", hint)
}

func revealAnswer(answer, explanation string) string {
	return fmt.Sprintf("No problem! The answer is: **%s**\n\n%s", answer, explanation)
}

func correctReply(explanation string) string {
	return fmt.Sprintf("Excellent! That's correct!\n\n%s", explanation)
}

func incorrectReply(feedback, misconception string) string {
	if feedback == "" {
		feedback = "Not quite."
	}
	if misconception != "" {
		feedback += " " + misconception
	}
	return feedback + "\n\nTry again, or say **'hint'** for help!"
}

func practiceDone(correct, total int) string {
	return fmt.Sprintf(`You've completed all practice problems!

Score: **%d/%d**

Would you like to:
- Try **more** practice problems
- **Continue** learning the next topic
- Learn something **new**

What would you like to do?`, correct, total)
}

const noProblems = "Let me generate some practice problems... Please try again in a moment."

func reviewMenu(subject string, covered []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Which part of **%s** would you like to revisit?\n", subject)
	for i, name := range covered {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, name)
	}
	b.WriteString("\n\nPick a number, or say **'back'** to return to the lesson.")
	return b.String()
}

func reviewReply(subtopic, explanation string) string {
	return fmt.Sprintf("**%s**, another way:\n\n%s\n\nPick another number, or say **'back'** to return to the lesson.", subtopic, explanation)
}

const nothingToReview = "We haven't covered anything yet. Let's keep going first!"

func reviewDone(subtopic string) string {
	return fmt.Sprintf("Back to **%s**. Ask me anything, or say **'next'** when you're ready to move on.", subtopic)
}

func summaryText(subject string, sum session.Summary) string {
	if subject == "" {
		subject = "your topic"
	}
	return fmt.Sprintf("Studied %s: %d problems attempted, %d correct, %d questions asked.",
		subject, sum.ProblemsAttempted, sum.ProblemsCorrect, sum.QuestionsAsked)
}

func farewell(subject string, level curriculum.Level, sum session.Summary) string {
	if subject == "" {
		subject = "your topic"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Great session learning about **%s**!\n\nSummary:\n- Level: %s\n- Questions asked: %d\n- Problems attempted: %d",
		subject, level, sum.QuestionsAsked, sum.ProblemsAttempted)
	if sum.Accuracy != nil {
		fmt.Fprintf(&b, "\n- Problems correct: %d (%.0f%%)", sum.ProblemsCorrect, *sum.Accuracy*100)
	}
	b.WriteString("\n\nYour progress has been saved. See you next time!")
	return b.String()
}
