package finance_bot

import (
	"context"
	"fmt"

	"duobot/internal/conversation"
	"duobot/internal/entities"
)

const expensesFlowName = "expenses"

// expensesFlow asks for a category and an amount for each expense slot and
// stores all of them at once when the last amount is accepted.
func expensesFlow(commit conversation.CommitFunc) conversation.Flow {
	ordinals := [entities.ExpenseSlots]string{"first", "second", "third"}
	prompts := make([]conversation.Prompt, 0, 2*entities.ExpenseSlots)
	for i := 1; i <= entities.ExpenseSlots; i++ {
		prompts = append(prompts,
			conversation.Prompt{
				Step:  conversation.Step(fmt.Sprintf("awaiting_category%d", i)),
				Field: categoryField(i),
				Text:  fmt.Sprintf("Enter the %s expense category:", ordinals[i-1]),
				Kind:  conversation.KindText,
			},
			conversation.Prompt{
				Step:  conversation.Step(fmt.Sprintf("awaiting_expenses%d", i)),
				Field: expensesField(i),
				Text:  fmt.Sprintf("Enter the expenses for category %d:", i),
				Kind:  conversation.KindAmount,
			},
		)
	}
	return conversation.Flow{
		Name:     expensesFlowName,
		Prompts:  prompts,
		DoneText: "Categories and expenses saved!",
		Commit:   commit,
	}
}

func categoryField(i int) string {
	return fmt.Sprintf("category%d", i)
}

func expensesField(i int) string {
	return fmt.Sprintf("expenses%d", i)
}

func (s *Service) commitExpenses(_ context.Context, userID int64, answers conversation.Answers) error {
	expenses := make([]entities.Expense, 0, entities.ExpenseSlots)
	for i := 1; i <= entities.ExpenseSlots; i++ {
		expenses = append(expenses, entities.Expense{
			Category: answers.Text(categoryField(i)),
			Amount:   answers.Amount(expensesField(i)),
		})
	}
	if err := s.repo.UpdateExpenses(userID, expenses); err != nil {
		return fmt.Errorf("update expenses: %w", err)
	}
	return nil
}
