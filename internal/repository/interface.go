package repository

import (
	"errors"

	"duobot/internal/entities"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type Repository interface {
	StoreUser(user *entities.User) error
	GetUser(id int64) (*entities.User, error)
	// UpdateExpenses overwrites all expense slots of an existing user in one write.
	UpdateExpenses(id int64, expenses []entities.Expense) error
}
