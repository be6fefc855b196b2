package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/chaturn/internal/lexicon"
)

// RecoveryMessage is returned for any call that does not fit the current phase.
const RecoveryMessage = "Something went wrong with the quiz. Type 'quiz' to start over."

const (
	selectionPrompt = `Please choose the type of quiz you'd like to take:

1️⃣ Traditional Quiz
   • Test your astronomy knowledge
   • Get scored on your answers
   • Learn interesting facts

2️⃣ Personal Quiz
   • Share your space preferences
   • Help me understand your interests
   • No right or wrong answers

Type '1' or 'traditional' for Traditional Quiz
Type '2' or 'personal' for Personal Quiz`

	selectionRetry   = "Please select a valid option: Type '1' or 'traditional' for Traditional Quiz, '2' or 'personal' for Personal Quiz."
	traditionalIntro = "Let's test your astronomy knowledge!"
	personalIntro    = "I'd love to learn about your space interests!"
	personalThanks   = "Thanks for sharing your preferences! I'll remember them for our future chats."
)

// Recorder receives quiz outcomes. metrics.Analytics implements it.
type Recorder interface {
	QuizAnswered(correct bool)
	QuizFinished(quizType string, completed bool)
}

// Options configures a Session. Zero values get production defaults.
type Options struct {
	Now       func() time.Time
	Rand      *rand.Rand
	Grading   GradingConfig
	ExitWords []string
	Recorder  Recorder
}

// attempt is the progress of one quiz run. It exists only while active and
// is kept afterwards for a single post-completion read.
type attempt struct {
	id            uuid.UUID
	quizType      Type
	questions     []Question
	index         int
	score         int
	hintsUsed     int
	wrong         []Question
	responseTimes []time.Duration
	preferences   map[string]string
	timerStart    time.Time
}

func (a *attempt) current() Question {
	return a.questions[a.index]
}

// Session is the quiz state machine: Idle -> AwaitingSelection -> Active -> Idle.
// It is not safe for concurrent use; each conversation owns one.
type Session struct {
	bank     Bank
	grader   *Grader
	exit     lexicon.WordSet
	now      func() time.Time
	recorder Recorder
	logger   zerolog.Logger

	phase    Phase
	active   *attempt
	finished *attempt
	report   *Report
}

// NewSession creates an idle session over bank.
func NewSession(bank Bank, opts Options, logger zerolog.Logger) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(opts.ExitWords) == 0 {
		opts.ExitWords = lexicon.Default().ExitWords
	}
	return &Session{
		bank:     bank,
		grader:   NewGrader(opts.Grading, opts.Rand),
		exit:     lexicon.NewWordSet(opts.ExitWords),
		now:      opts.Now,
		recorder: opts.Recorder,
		logger:   logger.With().Str("component", "quiz").Logger(),
	}
}

// Phase reports the current lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Grader exposes the answer checker used by the session.
func (s *Session) Grader() *Grader {
	return s.grader
}

// RequestStart moves an idle session to type selection and returns the prompt.
func (s *Session) RequestStart() string {
	if s.phase == PhaseActive {
		return "A quiz is already in progress.\n\n" + s.FormatQuestion()
	}
	s.phase = PhaseAwaitingSelection
	return selectionPrompt
}

// SelectType starts the chosen quiz, or re-prompts on anything unrecognized.
func (s *Session) SelectType(input string) string {
	if s.phase != PhaseAwaitingSelection {
		return RecoveryMessage
	}
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", string(TypeTraditional):
		return s.begin(TypeTraditional)
	case "2", string(TypePersonal):
		return s.begin(TypePersonal)
	default:
		return selectionRetry
	}
}

func (s *Session) begin(t Type) string {
	questions := s.bank.Questions(t)
	if len(questions) == 0 {
		s.phase = PhaseIdle
		return RecoveryMessage
	}

	a := &attempt{
		id:        uuid.New(),
		quizType:  t,
		questions: questions,
	}
	if t == TypeTraditional {
		a.timerStart = s.now()
	} else {
		a.preferences = make(map[string]string, len(questions))
	}
	s.active = a
	s.finished = nil
	s.report = nil
	s.phase = PhaseActive

	s.logger.Debug().
		Str("attempt_id", a.id.String()).
		Str("type", string(t)).
		Int("questions", len(questions)).
		Msg("quiz attempt started")

	intro := traditionalIntro
	if t == TypePersonal {
		intro = personalIntro
	}
	return intro + "\n\n" + s.FormatQuestion()
}

// Submit handles one input while a quiz is active: "hint", an exit word,
// "skip", or an answer to the current question.
func (s *Session) Submit(input string) string {
	if s.phase != PhaseActive || s.active == nil {
		return RecoveryMessage
	}
	a := s.active
	message := strings.ToLower(strings.TrimSpace(input))

	switch {
	case message == "hint":
		a.hintsUsed++
		return s.grader.Hint(a.current())
	case s.exit.Has(message):
		return s.end("Quiz ended!", false)
	case message == "skip":
		a.index++
		a.timerStart = s.now()
		if a.index >= len(a.questions) {
			return s.end("Quiz completed!", true)
		}
		return s.FormatQuestion()
	}

	var response string
	q := a.current()
	if a.quizType == TypeTraditional {
		now := s.now()
		a.responseTimes = append(a.responseTimes, now.Sub(a.timerStart))
		a.timerStart = now

		correct := s.grader.CheckAnswer(q, input)
		if correct {
			a.score++
			response = "✨ Correct! "
		} else {
			a.wrong = append(a.wrong, q)
			response = fmt.Sprintf("❌ Not quite. The correct answer was: %s. ", q.DisplayAnswer())
		}
		if s.recorder != nil {
			s.recorder.QuizAnswered(correct)
		}
	} else {
		a.preferences[q.Text] = strings.TrimSpace(input)
		response = "🌟 Thanks for sharing! "
	}

	a.index++
	if a.index >= len(a.questions) {
		return response + "\n\n" + s.end("Quiz completed!", true)
	}
	return response + "\n\n" + s.FormatQuestion()
}

// end returns the session to idle and renders the closing message.
func (s *Session) end(headline string, completed bool) string {
	a := s.active
	s.active = nil
	s.finished = a
	s.phase = PhaseIdle

	if s.recorder != nil {
		s.recorder.QuizFinished(string(a.quizType), completed)
	}
	s.logger.Debug().
		Str("attempt_id", a.id.String()).
		Str("type", string(a.quizType)).
		Int("score", a.score).
		Int("answered", a.index).
		Bool("completed", completed).
		Msg("quiz attempt finished")

	if a.quizType == TypePersonal {
		return personalThanks
	}
	report := analyze(a)
	s.report = &report
	return headline + " Final Results:\n\n" + report.String()
}

// AnalyzePerformance renders the analysis of the active attempt, or of the
// one that just finished.
func (s *Session) AnalyzePerformance() string {
	a := s.active
	if a == nil {
		a = s.finished
	}
	if a == nil || a.quizType != TypeTraditional {
		return "No quiz data available."
	}
	return analyze(a).String()
}

// LastReport returns the report of the most recent traditional attempt.
func (s *Session) LastReport() (Report, bool) {
	if s.report == nil {
		return Report{}, false
	}
	return *s.report, true
}

// Progress snapshots the active attempt, or the one that just finished.
func (s *Session) Progress() (Progress, bool) {
	a := s.active
	if a == nil {
		a = s.finished
	}
	if a == nil {
		return Progress{}, false
	}

	p := Progress{
		AttemptID: a.id.String(),
		Type:      a.quizType,
		Index:     a.index,
		Total:     len(a.questions),
		Score:     a.score,
		HintsUsed: a.hintsUsed,
		Wrong:     append([]Question(nil), a.wrong...),
	}
	for _, d := range a.responseTimes {
		p.ResponseTimes = append(p.ResponseTimes, d.Seconds())
	}
	if a.preferences != nil {
		p.Preferences = make(map[string]string, len(a.preferences))
		for k, v := range a.preferences {
			p.Preferences[k] = v
		}
	}
	return p, true
}

// Preferences returns the answers collected by the latest personal attempt.
func (s *Session) Preferences() map[string]string {
	p, ok := s.Progress()
	if !ok || p.Type != TypePersonal {
		return nil
	}
	return p.Preferences
}

// FormatQuestion renders the current question with progress and options.
func (s *Session) FormatQuestion() string {
	a := s.active
	if a == nil || a.index >= len(a.questions) {
		return "No questions available."
	}
	q := a.current()
	position := a.index + 1
	total := len(a.questions)

	var b strings.Builder
	fmt.Fprintf(&b, "Question %d/%d\n", position, total)
	fmt.Fprintf(&b, "Progress: [%s] %d%%\n", bar(position*barWidth/total, barWidth), position*100/total)
	if a.quizType == TypeTraditional {
		fmt.Fprintf(&b, "Score: %d/%d\n", a.score, a.index)
		b.WriteString("Hints Available: Type 'hint' for help\n")
	}
	b.WriteString("\n")
	b.WriteString(q.Text + "\n")

	if q.MultipleChoice() {
		b.WriteString("\nOptions:\n")
		for i, option := range q.Options {
			fmt.Fprintf(&b, "%d. %s\n", i+1, option)
		}
		b.WriteString("\nType the number or the answer text. Type 'hint' for help.")
	}
	return b.String()
}
