package game_bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"duobot/internal/game"

	tele "gopkg.in/telebot.v3"
)

const (
	textChallenge   = "Name the car brand! Answer with one word."
	textHintPrefix  = "Hint: "
	textCorrect     = "Correct! There is such a car."
	textWrong       = "There is no such car brand! Try again."
	textStartFirst  = "Start the game with /start first."
	textIssueFailed = "Something went wrong, please try again later."
	textCheckFailed = "Something went wrong while checking the answer."
)

type Player interface {
	IssueChallenge(ctx context.Context, userID int64) (*game.Issued, error)
	CheckGuess(ctx context.Context, userID int64, guess string) (*game.Verdict, error)
}

type Service struct {
	cfg  *Config
	game Player
	l    *slog.Logger
}

func New(cfg *Config, player Player, l *slog.Logger) *Service {
	cfg.SetDefaults()
	return &Service{
		cfg:  cfg,
		game: player,
		l:    l.With("name", "GameBot"),
	}
}

func (s *Service) Register(bot *tele.Bot) {
	bot.Handle("/start", s.onStart)
	bot.Handle(tele.OnText, s.onGuess)
}

func (s *Service) onStart(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
	defer cancel()

	issued, err := s.game.IssueChallenge(ctx, c.Sender().ID)
	if err != nil {
		s.l.Error(fmt.Errorf("failed to issue challenge: %w", err).Error(), "userId", c.Sender().ID)
		return c.Send(textIssueFailed)
	}

	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(issued.Obscured)),
		Caption: textChallenge,
	}
	if err = c.Send(photo); err != nil {
		return err
	}
	return c.Send(textHintPrefix + issued.Hint + ".")
}

func (s *Service) onGuess(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
	defer cancel()

	verdict, err := s.game.CheckGuess(ctx, c.Sender().ID, c.Text())
	switch {
	case errors.Is(err, game.ErrNoChallengeIssued):
		return c.Send(textStartFirst)
	case err != nil:
		s.l.Error(fmt.Errorf("failed to check guess: %w", err).Error(), "userId", c.Sender().ID)
		return c.Send(textCheckFailed)
	case !verdict.Correct:
		return c.Send(textWrong)
	}
	return c.Send(&tele.Photo{
		File:    tele.FromURL(verdict.Challenge.ImageUrl),
		Caption: textCorrect,
	})
}
