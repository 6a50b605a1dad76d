package sqlite_repo

import (
	"path/filepath"
	"testing"

	"duobot/internal/entities"
	"duobot/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := New(&repository.Config{Dsn: filepath.Join(t.TempDir(), "users.db")})
	require.NoError(t, err)
	return repo
}

func TestStoreUser(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.StoreUser(&entities.User{Id: 42, Name: "Alice"}))
	err := repo.StoreUser(&entities.User{Id: 42, Name: "Mallory"})
	assert.ErrorIs(t, err, repository.ErrUserExists)

	user, err := repo.GetUser(42)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.True(t, user.Expenses1.IsZero())
}

func TestGetUserNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetUser(1)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUpdateExpenses(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.StoreUser(&entities.User{Id: 7, Name: "Bob"}))

	err := repo.UpdateExpenses(7, []entities.Expense{
		{Category: "food", Amount: decimal.RequireFromString("500")},
		{Category: "transport", Amount: decimal.RequireFromString("120.50")},
		{Category: "fun", Amount: decimal.Zero},
	})
	require.NoError(t, err)

	user, err := repo.GetUser(7)
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, "food", user.Category1)
	assert.Equal(t, "transport", user.Category2)
	assert.Equal(t, "fun", user.Category3)
	assert.True(t, decimal.RequireFromString("500").Equal(user.Expenses1))
	assert.True(t, decimal.RequireFromString("120.5").Equal(user.Expenses2))
	assert.True(t, user.Expenses3.IsZero())
}

func TestUpdateExpensesUnknownUser(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateExpenses(404, []entities.Expense{{Category: "food", Amount: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
