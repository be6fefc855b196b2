package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/chaturn/internal/chat"
	"github.com/gokatarajesh/chaturn/internal/config"
	"github.com/gokatarajesh/chaturn/internal/intent"
	"github.com/gokatarajesh/chaturn/internal/knowledge"
	"github.com/gokatarajesh/chaturn/internal/lexicon"
	"github.com/gokatarajesh/chaturn/internal/logging"
	"github.com/gokatarajesh/chaturn/internal/metrics"
	"github.com/gokatarajesh/chaturn/internal/quiz"
	"github.com/gokatarajesh/chaturn/internal/server"
)

const (
	prompt   = "> "
	farewell = "Goodbye! Keep looking up. 🔭"
)

// Streams is the terminal a conversation runs on. Nil fields default to the
// process's stdin, stdout and stderr.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Application aggregates the conversation core and the optional ops server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger
	in     io.Reader
	out    io.Writer

	classifier *intent.Classifier
	bot        *chat.Bot
	analytics  *metrics.Analytics
	http       *http.Server
}

// New loads vocabulary, quiz bank, canned content and the knowledge store,
// then wires one conversation.
func New(ctx context.Context, cfg *config.App, streams Streams) (*Application, error) {
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}
	logger := logging.NewWithWriter(streams.Err, cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Debug().Msg("starting application bootstrap")

	lex, err := lexicon.Load(cfg.Data.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	bank, err := quiz.LoadBank(cfg.Quiz.BankPath)
	if err != nil {
		return nil, fmt.Errorf("load quiz bank: %w", err)
	}
	content, err := chat.LoadContent(cfg.Data.ChatContentPath)
	if err != nil {
		return nil, fmt.Errorf("load chat content: %w", err)
	}
	store := knowledge.Load(cfg.Data.AstronomyJSONPath, cfg.Data.SpaceObjectsCSVPath, logger)

	analytics := metrics.NewAnalytics()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	grading := quiz.DefaultGradingConfig()
	grading.OptionThreshold = cfg.Quiz.SimilarityThreshold
	session := quiz.NewSession(bank, quiz.Options{
		Rand:      rng,
		Grading:   grading,
		ExitWords: lex.ExitWords,
		Recorder:  analytics,
	}, logger)

	classifier := intent.NewClassifier(lex)
	bot := chat.NewBot(classifier, session, store, analytics, chat.Options{
		UserName: cfg.UserName,
		Content:  &content,
		Rand:     rng,
	}, logger)

	var opsServer *http.Server
	if cfg.Metrics.Enabled() {
		opsServer = server.NewOpsServer(cfg.Metrics.Addr, analytics.Registry(), logger)
	}

	return &Application{
		cfg:        cfg,
		logger:     logger,
		in:         streams.In,
		out:        streams.Out,
		classifier: classifier,
		bot:        bot,
		analytics:  analytics,
		http:       opsServer,
	}, nil
}

// Ask answers a single message without entering the loop.
func (a *Application) Ask(message string) string {
	return a.bot.Respond(message)
}

// Classify exposes the intent classifier for debugging.
func (a *Application) Classify(message string) intent.Command {
	return a.classifier.Classify(message, false)
}

// Run holds the conversation until input ends, the user quits, a signal
// arrives or ctx is canceled.
func (a *Application) Run(ctx context.Context) error {
	ctx = logging.IntoContext(ctx, a.logger)
	errCh := make(chan error, 1)

	if a.http != nil {
		go func() {
			a.logger.Info().Str("addr", a.cfg.Metrics.Addr).Msg("ops server listening")
			if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	defer close(done)
	lines := readLines(a.in, done)
	a.say(a.bot.Welcome())

	var runErr error
loop:
	for {
		fmt.Fprint(a.out, prompt)
		select {
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(a.out)
				break loop
			}
			if a.bot.Idle() && isQuit(line) {
				a.say(farewell)
				break loop
			}
			a.say(a.bot.Respond(line))
		case sig := <-sigCh:
			fmt.Fprintln(a.out)
			a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
			break loop
		case err := <-errCh:
			runErr = fmt.Errorf("ops server error: %w", err)
			break loop
		case <-ctx.Done():
			ctxLogger := logging.FromContext(ctx)
			ctxLogger.Warn().Msg("context canceled")
			break loop
		}
	}

	a.shutdown()
	a.logger.Info().Int("interactions", a.analytics.TotalInteractions()).Msg("conversation ended")
	return runErr
}

func (a *Application) say(text string) {
	fmt.Fprintf(a.out, "%s\n\n", text)
}

func (a *Application) shutdown() {
	if a.http == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Metrics.GracefulShutdownTimeout)
	defer cancel()
	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("ops server shutdown error")
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit", "/quit":
		return true
	}
	return false
}

// readLines feeds input lines to a channel that closes at EOF or once done
// is closed.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}
