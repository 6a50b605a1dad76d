// Package finance_bot is the personal finance tracker: registration, exchange
// rates, saving tips, the expenses form and the statistics view.
package finance_bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"math/rand"
	"strings"

	"duobot/internal/charts"
	"duobot/internal/clients/exchangerate"
	"duobot/internal/conversation"
	"duobot/internal/entities"
	"duobot/internal/repository"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v3"
)

const (
	textGreeting          = "Hi! I am your personal finance assistant. Choose one of the options in the menu:"
	textChooseFromMenu    = "Choose one of the options in the menu."
	textRegistered        = "You have been registered!"
	textAlreadyRegistered = "You are already registered!"
	textRegisterFirst     = "Register first, then enter your expenses. Your answers are kept, send the last amount again after registering."
	textNotRegistered     = "Register first to track your expenses."
	textUserNotFound      = "User not found"
	textRatesUnavailable  = "Could not get exchange rates, please try again later."
	textNoCategory        = "No category"
	textNotSet            = "Not set"
	textSomethingWrong    = "Something went wrong, please try again later."
)

type RatesSource interface {
	Latest(ctx context.Context, base string) (exchangerate.Rates, error)
}

type Service struct {
	cfg    *Config
	repo   repository.Repository
	rates  RatesSource
	engine *conversation.Engine
	intn   func(n int) int
	l      *slog.Logger

	menu        *tele.ReplyMarkup
	btnRegister tele.Btn
	btnRates    tele.Btn
	btnTips     tele.Btn
	btnFinances tele.Btn
	btnView     tele.Btn
}

func New(cfg *Config, repo repository.Repository, rates RatesSource, l *slog.Logger) (*Service, error) {
	cfg.SetDefaults()
	s := &Service{
		cfg:   cfg,
		repo:  repo,
		rates: rates,
		intn:  rand.Intn,
		l:     l.With("name", "FinanceBot"),
	}

	engine, err := conversation.NewEngine(expensesFlow(s.commitExpenses), s.l)
	if err != nil {
		return nil, fmt.Errorf("failed to build expenses flow: %w", err)
	}
	s.engine = engine

	s.menu = &tele.ReplyMarkup{ResizeKeyboard: true}
	s.btnRegister = s.menu.Text("Register")
	s.btnRates = s.menu.Text("Exchange rates")
	s.btnTips = s.menu.Text("Saving tips")
	s.btnFinances = s.menu.Text("Personal finances")
	s.btnView = s.menu.Text("View finances")
	s.menu.Reply(
		s.menu.Row(s.btnRegister, s.btnRates),
		s.menu.Row(s.btnTips, s.btnFinances),
		s.menu.Row(s.btnView),
	)
	return s, nil
}

func (s *Service) Register(bot *tele.Bot) {
	bot.Handle("/start", s.onStart)
	bot.Handle(&s.btnRegister, s.onRegister)
	bot.Handle(&s.btnRates, s.onRates)
	bot.Handle(&s.btnTips, s.onTips)
	bot.Handle(&s.btnFinances, s.onFinances)
	bot.Handle(&s.btnView, s.onView)
	bot.Handle(tele.OnText, s.onText)
}

func (s *Service) onStart(c tele.Context) error {
	return c.Send(textGreeting, s.menu)
}

func (s *Service) onRegister(c tele.Context) error {
	sender := c.Sender()
	err := s.repo.StoreUser(&entities.User{Id: sender.ID, Name: fullName(sender)})
	switch {
	case errors.Is(err, repository.ErrUserExists):
		return c.Send(textAlreadyRegistered, s.menu)
	case err != nil:
		s.l.Error(fmt.Errorf("failed to register user: %w", err).Error(), "userId", sender.ID)
		return c.Send(textSomethingWrong)
	}
	s.l.Info("user registered", "userId", sender.ID)
	return c.Send(textRegistered, s.menu)
}

func (s *Service) onRates(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
	defer cancel()

	rates, err := s.rates.Latest(ctx, s.cfg.BaseCurrency)
	if err != nil {
		s.l.Warn(fmt.Errorf("failed to get exchange rates: %w", err).Error())
		return c.Send(textRatesUnavailable)
	}

	lines := make([]string, 0, len(s.cfg.Currencies))
	for _, currency := range s.cfg.Currencies {
		rate, err := rates.Cross(currency, s.cfg.QuoteCurrency)
		if err != nil {
			s.l.Warn(fmt.Errorf("failed to derive rate: %w", err).Error(), "currency", currency)
			return c.Send(textRatesUnavailable)
		}
		lines = append(lines, fmt.Sprintf("1 %s - %s %s",
			currency, decimal.NewFromFloat(rate).StringFixed(2), s.cfg.QuoteCurrency))
	}
	return c.Send(strings.Join(lines, "\n"))
}

func (s *Service) onTips(c tele.Context) error {
	return c.Send(s.cfg.Tips[s.intn(len(s.cfg.Tips))])
}

func (s *Service) onFinances(c tele.Context) error {
	userID := c.Sender().ID
	if _, err := s.repo.GetUser(userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Send(textNotRegistered, s.menu)
		}
		s.l.Error(fmt.Errorf("failed to get user: %w", err).Error(), "userId", userID)
		return c.Send(textSomethingWrong)
	}
	return c.Reply(s.engine.Begin(userID).Text)
}

func (s *Service) onView(c tele.Context) error {
	userID := c.Sender().ID
	user, err := s.repo.GetUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Send(textUserNotFound)
		}
		s.l.Error(fmt.Errorf("failed to get user: %w", err).Error(), "userId", userID)
		return c.Send(textSomethingWrong)
	}

	if err = c.Send(s.statistics(user), tele.ModeHTML); err != nil {
		return err
	}

	pie, err := charts.ExpensesPie(user.Expenses(), s.cfg.QuoteCurrency)
	if err != nil {
		s.l.Warn(err.Error(), "userId", userID)
		return nil
	}
	if pie == nil {
		return nil
	}
	return c.Send(&tele.Photo{File: tele.FromReader(bytes.NewReader(pie))})
}

func (s *Service) statistics(user *entities.User) string {
	name := user.Name
	if name == "" {
		name = textNotSet
	}
	lines := []string{
		"<b>Your statistics:</b>",
		"<b>Name:</b> " + html.EscapeString(name),
		"",
		"<b>Expense categories:</b>",
	}
	for i, e := range user.Expenses() {
		category := e.Category
		if category == "" {
			category = textNoCategory
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s %s",
			i+1, html.EscapeString(category), e.Amount.StringFixed(2), s.cfg.QuoteCurrency))
	}
	return strings.Join(lines, "\n")
}

func (s *Service) onText(c tele.Context) error {
	userID := c.Sender().ID
	reply, err := s.engine.Handle(context.Background(), userID, c.Text())
	switch {
	case err == nil:
		if reply.Done {
			return c.Send(reply.Text, s.menu)
		}
		return c.Reply(reply.Text)
	case errors.Is(err, conversation.ErrNoActiveSession):
		return c.Send(textChooseFromMenu, s.menu)
	case errors.Is(err, conversation.ErrInvalidAmount), errors.Is(err, conversation.ErrEmptyAnswer):
		return c.Reply(reply.Text)
	case errors.Is(err, repository.ErrUserNotFound):
		return c.Send(textRegisterFirst, s.menu)
	}
	s.l.Error(fmt.Errorf("failed to handle answer: %w", err).Error(), "userId", userID)
	return c.Send(textSomethingWrong)
}

func fullName(u *tele.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
