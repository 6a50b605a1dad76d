package entities

import "github.com/shopspring/decimal"

// ExpenseSlots is the number of category/amount pairs stored per user.
const ExpenseSlots = 3

type User struct {
	Id        int64           `json:"id" gorm:"primaryKey;autoIncrement:false"` // tg user id
	Name      string          `json:"name" gorm:"type:varchar(255)"`
	Category1 string          `json:"category1" gorm:"column:category1;type:varchar(255)"`
	Category2 string          `json:"category2" gorm:"column:category2;type:varchar(255)"`
	Category3 string          `json:"category3" gorm:"column:category3;type:varchar(255)"`
	Expenses1 decimal.Decimal `json:"expenses1" gorm:"column:expenses1;type:decimal(20,2);not null;default:0"`
	Expenses2 decimal.Decimal `json:"expenses2" gorm:"column:expenses2;type:decimal(20,2);not null;default:0"`
	Expenses3 decimal.Decimal `json:"expenses3" gorm:"column:expenses3;type:decimal(20,2);not null;default:0"`
}

type Expense struct {
	Category string
	Amount   decimal.Decimal
}

// Expenses returns the stored pairs in slot order.
func (u *User) Expenses() []Expense {
	return []Expense{
		{Category: u.Category1, Amount: u.Expenses1},
		{Category: u.Category2, Amount: u.Expenses2},
		{Category: u.Category3, Amount: u.Expenses3},
	}
}

// SetExpenses fills the slots from expenses, resetting the ones not provided.
func (u *User) SetExpenses(expenses []Expense) {
	slots := make([]Expense, ExpenseSlots)
	copy(slots, expenses)
	u.Category1, u.Expenses1 = slots[0].Category, slots[0].Amount
	u.Category2, u.Expenses2 = slots[1].Category, slots[1].Amount
	u.Category3, u.Expenses3 = slots[2].Category, slots[2].Amount
}
