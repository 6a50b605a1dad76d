package charts

import (
	"bytes"
	"fmt"

	"duobot/internal/entities"

	"github.com/wcharczuk/go-chart/v2"
)

// ExpensesPie renders the positive expenses of a user as a PNG pie chart.
// It returns nil when there is nothing to draw.
func ExpensesPie(expenses []entities.Expense, currency string) ([]byte, error) {
	values := make([]chart.Value, 0, len(expenses))
	for i, e := range expenses {
		if !e.Amount.IsPositive() {
			continue
		}
		amount, _ := e.Amount.Float64()
		label := e.Category
		if label == "" {
			label = fmt.Sprintf("Category %d", i+1)
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s %s", label, e.Amount.StringFixed(2), currency),
			Value: amount,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer(nil)
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render expenses pie: %w", err)
	}
	return buffer.Bytes(), nil
}
