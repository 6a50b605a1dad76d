package sqlite_repo

import (
	"errors"
	"fmt"

	"duobot/internal/entities"
	"duobot/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sqliteRepo struct {
	db *gorm.DB
}

func New(cfg *repository.Config) (repository.Repository, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err = db.AutoMigrate(&entities.User{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &sqliteRepo{
		db: db,
	}, nil
}

func (r *sqliteRepo) StoreUser(user *entities.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.User{}).Where("id = ?", user.Id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return repository.ErrUserExists
		}
		return tx.Create(user).Error
	})
}

func (r *sqliteRepo) GetUser(id int64) (*entities.User, error) {
	user := &entities.User{}
	result := r.db.First(user, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

func (r *sqliteRepo) UpdateExpenses(id int64, expenses []entities.Expense) error {
	update := &entities.User{}
	update.SetExpenses(expenses)
	result := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(map[string]any{
		"category1": update.Category1,
		"expenses1": update.Expenses1,
		"category2": update.Category2,
		"expenses2": update.Expenses2,
		"category3": update.Category3,
		"expenses3": update.Expenses3,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
