package charts

import (
	"bytes"
	"image/png"
	"testing"

	"duobot/internal/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpensesPie(t *testing.T) {
	out, err := ExpensesPie([]entities.Expense{
		{Category: "food", Amount: decimal.NewFromInt(500)},
		{Category: "transport", Amount: decimal.NewFromInt(120)},
		{Category: "", Amount: decimal.Zero},
	}, "RUB")

	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
}

func TestExpensesPieNothingToDraw(t *testing.T) {
	out, err := ExpensesPie([]entities.Expense{{Category: "food"}, {}, {}}, "RUB")

	assert.NoError(t, err)
	assert.Nil(t, out)
}
