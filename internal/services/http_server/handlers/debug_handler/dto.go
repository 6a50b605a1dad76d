package debug_handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

type Action string

const (
	actionNewUser Action = "new_user"
	actionGetUser Action = "get_user"
)

var validate = validator.New()

type actionDto struct {
	Action Action `json:"action" validate:"required"`
}

type debugRequestDto struct {
	actionDto
	Data interface{} `json:"-"`
}

func (d *debugRequestDto) UnmarshalJSON(bytes []byte) error {
	if err := jsoniter.Unmarshal(bytes, &d.actionDto); err != nil {
		return fmt.Errorf("json unmarshal error: %w", err)
	}

	switch d.Action {
	case actionNewUser:
		wrapper := &struct {
			Data *newUserRequestData `json:"data"`
		}{}
		_ = jsoniter.Unmarshal(bytes, wrapper) // not the first unmarshal
		if wrapper.Data != nil {
			d.Data = wrapper.Data
		}
	case actionGetUser:
		wrapper := &struct {
			Data *getUserRequestData `json:"data"`
		}{}
		_ = jsoniter.Unmarshal(bytes, wrapper) // not the first unmarshal
		if wrapper.Data != nil {
			d.Data = wrapper.Data
		}
	}

	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if d.Data != nil {
		if err := validate.Struct(d.Data); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}
	}
	return nil
}

type newUserRequestData struct {
	UserId int64  `json:"user_id" validate:"required"`
	Name   string `json:"name"`
}

type getUserRequestData struct {
	UserId int64 `json:"user_id" validate:"required"`
}

type expenseDto struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type userResponseDto struct {
	Id       int64        `json:"id"`
	Name     string       `json:"name"`
	Expenses []expenseDto `json:"expenses"`
}
