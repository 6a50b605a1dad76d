// Package game runs the photo guessing cycle: issue a blurred photo, then
// check the player's guesses against a brand directory.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"duobot/internal/entities"
	"duobot/internal/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var ErrNoChallengeIssued = errors.New("no challenge issued")

type PhotoSource interface {
	RandomPhoto(ctx context.Context, query string) (entities.Photo, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

type BrandChecker interface {
	BrandExists(ctx context.Context, term string) (bool, error)
}

// ObscureFunc degrades raw image bytes, keeping their format.
type ObscureFunc func(raw []byte) ([]byte, error)

type Game struct {
	query      string
	photos     PhotoSource
	brands     BrandChecker
	obscure    ObscureFunc
	challenges *ChallengeStore
	now        func() time.Time
	l          *slog.Logger
}

func New(query string, photos PhotoSource, brands BrandChecker, obscure ObscureFunc, l *slog.Logger) *Game {
	return &Game{
		query:      query,
		photos:     photos,
		brands:     brands,
		obscure:    obscure,
		challenges: NewChallengeStore(),
		now:        time.Now,
		l:          l.With("name", "Game"),
	}
}

type Issued struct {
	Challenge entities.Challenge
	Obscured  []byte
	Hint      string
}

// IssueChallenge replaces the player's challenge with a fresh one.
func (g *Game) IssueChallenge(ctx context.Context, userID int64) (*Issued, error) {
	photo, err := g.photos.RandomPhoto(ctx, g.query)
	if err != nil {
		return nil, fmt.Errorf("get random photo: %w", err)
	}
	raw, err := g.photos.Download(ctx, photo.Url)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	obscured, err := g.obscure(raw)
	if err != nil {
		return nil, fmt.Errorf("obscure photo: %w", err)
	}

	challenge := entities.Challenge{
		Id:          uuid.New(),
		UserId:      userID,
		ImageUrl:    photo.Url,
		Description: photo.Description,
		IssuedAt:    g.now(),
	}
	g.challenges.Put(challenge)
	metrics.ChallengesIssued.Inc()
	g.l.Info("challenge issued", "userId", userID, "challengeId", challenge.Id, "answer", challenge.Description)

	return &Issued{
		Challenge: challenge,
		Obscured:  obscured,
		Hint:      challenge.Description,
	}, nil
}

type Verdict struct {
	Correct   bool
	Challenge entities.Challenge
}

func (g *Game) CheckGuess(ctx context.Context, userID int64, guess string) (*Verdict, error) {
	challenge, ok := g.challenges.Get(userID)
	if !ok {
		return nil, ErrNoChallengeIssued
	}

	verdict := &Verdict{Challenge: challenge}
	term := normalizeGuess(guess)
	if term != "" {
		exists, err := g.brands.BrandExists(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("check brand: %w", err)
		}
		verdict.Correct = exists
	}

	result := "wrong"
	if verdict.Correct {
		result = "correct"
	}
	metrics.GuessesChecked.With(prometheus.Labels{"result": result}).Inc()
	g.l.Info("guess checked", "userId", userID, "challengeId", challenge.Id, "guess", term, "result", result)
	return verdict, nil
}

func normalizeGuess(guess string) string {
	return strings.ToLower(strings.TrimSpace(guess))
}
