package debug_handler

import (
	"errors"
	"fmt"

	"duobot/internal/entities"
	"duobot/internal/repository"
	"duobot/internal/services/http_server/handlers"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var errNoRequestData = errors.New("request data is nil")

type debugHandler struct {
	repo repository.Repository
}

func New(repo repository.Repository) handlers.Handler {
	return &debugHandler{repo: repo}
}

func (h *debugHandler) Handle(ctx *fasthttp.RequestCtx) {
	var err error
	defer func() {
		if err != nil {
			ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		}
	}()

	request := &debugRequestDto{}
	if err = jsoniter.Unmarshal(ctx.Request.Body(), request); err != nil {
		return
	}
	switch request.Action {
	case actionNewUser:
		data, ok := request.Data.(*newUserRequestData)
		if !ok {
			err = errNoRequestData
			return
		}
		err = h.handleNewUser(ctx, data)
	case actionGetUser:
		data, ok := request.Data.(*getUserRequestData)
		if !ok {
			err = errNoRequestData
			return
		}
		err = h.handleGetUser(ctx, data)
	}
}

func (h *debugHandler) handleNewUser(ctx *fasthttp.RequestCtx, data *newUserRequestData) error {
	err := h.repo.StoreUser(&entities.User{Id: data.UserId, Name: data.Name})
	if err != nil {
		return err
	}

	ctx.Response.SetStatusCode(fasthttp.StatusOK)
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody([]byte("ok"))
	return nil
}

func (h *debugHandler) handleGetUser(ctx *fasthttp.RequestCtx, data *getUserRequestData) error {
	user, err := h.repo.GetUser(data.UserId)
	if err != nil {
		return err
	}

	response := &userResponseDto{Id: user.Id, Name: user.Name}
	for _, e := range user.Expenses() {
		response.Expenses = append(response.Expenses, expenseDto{Category: e.Category, Amount: e.Amount})
	}
	bytes, err := jsoniter.Marshal(response)
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}
	ctx.Response.SetStatusCode(fasthttp.StatusOK)
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(bytes)
	return nil
}
