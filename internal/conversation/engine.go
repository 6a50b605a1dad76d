package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"duobot/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// amountPattern fits decimal(20,2): up to 18 integer digits, a dot or a
// single decimal comma, up to 2 fractional digits.
var amountPattern = regexp.MustCompile(`^\d{1,18}([.,]\d{1,2})?$`)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyAnswer   = errors.New("empty answer")
)

// Kind tells how a reply to a prompt is validated.
type Kind int

const (
	KindText Kind = iota
	KindAmount
)

type Prompt struct {
	Step  Step
	Field string
	Text  string
	Kind  Kind
}

// CommitFunc persists the answers of a completed flow.
type CommitFunc func(ctx context.Context, userID int64, answers Answers) error

type Flow struct {
	Name     string
	Prompts  []Prompt
	DoneText string
	Commit   CommitFunc
}

type Reply struct {
	Text string
	Done bool
}

type Engine struct {
	flow  Flow
	index map[Step]int
	store *Store
	l     *slog.Logger
}

func NewEngine(flow Flow, l *slog.Logger) (*Engine, error) {
	if len(flow.Prompts) == 0 {
		return nil, fmt.Errorf("flow %q has no prompts", flow.Name)
	}
	if flow.Commit == nil {
		return nil, fmt.Errorf("flow %q has no commit func", flow.Name)
	}
	index := make(map[Step]int, len(flow.Prompts))
	steps := make([]Step, 0, len(flow.Prompts))
	for i, p := range flow.Prompts {
		if p.Step == StepCommitted {
			return nil, fmt.Errorf("flow %q: step %q is reserved", flow.Name, p.Step)
		}
		if _, ok := index[p.Step]; ok {
			return nil, fmt.Errorf("flow %q: duplicate step %q", flow.Name, p.Step)
		}
		index[p.Step] = i
		steps = append(steps, p.Step)
	}
	if l == nil {
		l = slog.Default()
	}
	return &Engine{
		flow:  flow,
		index: index,
		store: NewStore(steps...),
		l:     l.With("flow", flow.Name),
	}, nil
}

// Begin (re)starts the flow for the user and returns the first prompt.
func (e *Engine) Begin(userID int64) Reply {
	session := e.store.Start(userID)
	metrics.FlowsStarted.With(prometheus.Labels{"flow": e.flow.Name}).Inc()
	e.l.Info("flow started", "userId", userID, "runId", session.RunID)
	return Reply{Text: e.flow.Prompts[0].Text}
}

func (e *Engine) Active(userID int64) bool {
	_, ok := e.store.Get(userID)
	return ok
}

// Handle feeds one reply into the user's session. A rejected reply returns
// ErrInvalidAmount or ErrEmptyAnswer together with a reply re-asking the same
// prompt; the session is left as it was. The last accepted reply commits.
func (e *Engine) Handle(ctx context.Context, userID int64, text string) (Reply, error) {
	session, ok := e.store.Get(userID)
	if !ok {
		return Reply{}, ErrNoActiveSession
	}
	i, ok := e.index[session.Step]
	if !ok {
		return Reply{}, fmt.Errorf("session %s is at unknown step %q", session.RunID, session.Step)
	}
	prompt := e.flow.Prompts[i]
	l := e.l.With("userId", userID, "runId", session.RunID, "step", session.Step)

	value, err := parseAnswer(prompt.Kind, text)
	if err != nil {
		metrics.InvalidAnswers.With(prometheus.Labels{"flow": e.flow.Name, "field": prompt.Field}).Inc()
		l.Debug("answer rejected", "err", err.Error())
		return Reply{Text: rejectionText(err) + "\n" + prompt.Text}, err
	}

	if i < len(e.flow.Prompts)-1 {
		if _, err = e.store.Update(ctx, userID, prompt.Field, value); err != nil {
			return Reply{}, err
		}
		return Reply{Text: e.flow.Prompts[i+1].Text}, nil
	}

	answers := session.Answers
	answers[prompt.Field] = value
	if err = e.flow.Commit(ctx, userID, answers); err != nil {
		return Reply{}, fmt.Errorf("commit %s: %w", e.flow.Name, err)
	}
	if _, err = e.store.Update(ctx, userID, prompt.Field, value); err != nil {
		l.Warn("session changed during commit", "err", err.Error())
	}
	e.store.Clear(userID)
	metrics.FlowsCommitted.With(prometheus.Labels{"flow": e.flow.Name}).Inc()
	l.Info("flow committed")
	return Reply{Text: e.flow.DoneText, Done: true}, nil
}

func parseAnswer(kind Kind, text string) (any, error) {
	trimmed := strings.TrimSpace(text)
	switch kind {
	case KindAmount:
		if !amountPattern.MatchString(trimmed) {
			return nil, ErrInvalidAmount
		}
		amount, err := decimal.NewFromString(strings.Replace(trimmed, ",", ".", 1))
		if err != nil {
			return nil, ErrInvalidAmount
		}
		return amount, nil
	default:
		if trimmed == "" {
			return nil, ErrEmptyAnswer
		}
		return text, nil
	}
}

func rejectionText(err error) string {
	if errors.Is(err, ErrInvalidAmount) {
		return "The amount should be a non-negative number, for example 1500 or 99.90."
	}
	return "The answer should not be empty."
}
