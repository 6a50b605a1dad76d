package game

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"duobot/internal/clients"
	"duobot/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type photoStub struct {
	photos    []entities.Photo
	calls     int
	randomErr error
}

func (s *photoStub) RandomPhoto(_ context.Context, query string) (entities.Photo, error) {
	if s.randomErr != nil {
		return entities.Photo{}, s.randomErr
	}
	p := s.photos[s.calls%len(s.photos)]
	s.calls++
	return p, nil
}

func (s *photoStub) Download(_ context.Context, url string) ([]byte, error) {
	return []byte("raw:" + url), nil
}

type brandStub struct {
	known map[string]bool
	terms []string
	err   error
}

func (s *brandStub) BrandExists(_ context.Context, term string) (bool, error) {
	s.terms = append(s.terms, term)
	if s.err != nil {
		return false, s.err
	}
	return s.known[term], nil
}

func blurStub(raw []byte) ([]byte, error) {
	return append([]byte("blurred:"), raw...), nil
}

func newTestGame(photos *photoStub, brands *brandStub) *Game {
	return New("car", photos, brands, blurStub, slog.Default())
}

func TestIssueChallenge(t *testing.T) {
	photos := &photoStub{photos: []entities.Photo{{Url: "https://img/1.jpg", Description: "a red bmw"}}}
	g := newTestGame(photos, &brandStub{})

	issued, err := g.IssueChallenge(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "blurred:raw:https://img/1.jpg", string(issued.Obscured))
	assert.Equal(t, "a red bmw", issued.Hint)
	assert.Equal(t, "https://img/1.jpg", issued.Challenge.ImageUrl)
	assert.Equal(t, int64(1), issued.Challenge.UserId)
}

func TestIssueChallengeUnavailable(t *testing.T) {
	photos := &photoStub{randomErr: clients.ErrServiceUnavailable}
	g := newTestGame(photos, &brandStub{})

	_, err := g.IssueChallenge(context.Background(), 1)
	assert.ErrorIs(t, err, clients.ErrServiceUnavailable)

	_, err = g.CheckGuess(context.Background(), 1, "bmw")
	assert.ErrorIs(t, err, ErrNoChallengeIssued)
}

func TestIssueChallengeObscureFailure(t *testing.T) {
	photos := &photoStub{photos: []entities.Photo{{Url: "u", Description: "d"}}}
	g := New("car", photos, &brandStub{}, func([]byte) ([]byte, error) { return nil, errors.New("bad image") }, slog.Default())

	_, err := g.IssueChallenge(context.Background(), 1)

	assert.ErrorContains(t, err, "bad image")
}

func TestCheckGuessWithoutChallenge(t *testing.T) {
	brands := &brandStub{}
	g := newTestGame(&photoStub{}, brands)

	for _, userID := range []int64{1, 2, 3} {
		_, err := g.CheckGuess(context.Background(), userID, "bmw")
		assert.ErrorIs(t, err, ErrNoChallengeIssued)
	}
	assert.Empty(t, brands.terms)
}

func TestCheckGuess(t *testing.T) {
	photos := &photoStub{photos: []entities.Photo{{Url: "https://img/1.jpg", Description: "a red bmw"}}}
	brands := &brandStub{known: map[string]bool{"bmw": true}}
	g := newTestGame(photos, brands)
	_, err := g.IssueChallenge(context.Background(), 1)
	require.NoError(t, err)

	verdict, err := g.CheckGuess(context.Background(), 1, "  BMW ")
	require.NoError(t, err)
	assert.True(t, verdict.Correct)
	assert.Equal(t, "https://img/1.jpg", verdict.Challenge.ImageUrl)

	verdict, err = g.CheckGuess(context.Background(), 1, "Potato")
	require.NoError(t, err)
	assert.False(t, verdict.Correct)

	verdict, err = g.CheckGuess(context.Background(), 1, "   ")
	require.NoError(t, err)
	assert.False(t, verdict.Correct)

	assert.Equal(t, []string{"bmw", "potato"}, brands.terms)
}

func TestCheckGuessUnavailable(t *testing.T) {
	photos := &photoStub{photos: []entities.Photo{{Url: "u", Description: "d"}}}
	g := newTestGame(photos, &brandStub{err: clients.ErrServiceUnavailable})
	_, err := g.IssueChallenge(context.Background(), 1)
	require.NoError(t, err)

	_, err = g.CheckGuess(context.Background(), 1, "bmw")

	assert.ErrorIs(t, err, clients.ErrServiceUnavailable)
}

func TestChallengesArePerPlayer(t *testing.T) {
	photos := &photoStub{photos: []entities.Photo{
		{Url: "https://img/1.jpg", Description: "first"},
		{Url: "https://img/2.jpg", Description: "second"},
	}}
	g := newTestGame(photos, &brandStub{known: map[string]bool{"audi": true}})

	_, err := g.IssueChallenge(context.Background(), 1)
	require.NoError(t, err)
	_, err = g.IssueChallenge(context.Background(), 2)
	require.NoError(t, err)

	v1, err := g.CheckGuess(context.Background(), 1, "audi")
	require.NoError(t, err)
	v2, err := g.CheckGuess(context.Background(), 2, "audi")
	require.NoError(t, err)
	assert.Equal(t, "https://img/1.jpg", v1.Challenge.ImageUrl)
	assert.Equal(t, "https://img/2.jpg", v2.Challenge.ImageUrl)

	_, err = g.CheckGuess(context.Background(), 3, "audi")
	assert.ErrorIs(t, err, ErrNoChallengeIssued)
}
