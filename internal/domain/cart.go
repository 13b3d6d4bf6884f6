package domain

import "github.com/shopspring/decimal"

// MaxCartQuantity bounds both a single add and the accumulated quantity of a line.
const MaxCartQuantity = 10000

// CartLine is one (user, menu item) pair awaiting checkout. MenuItemName and
// UnitPrice are read from the live menu item when the line is loaded.
type CartLine struct {
	ID           uint
	UserID       uint
	MenuItemID   uint
	MenuItemName string
	UnitPrice    decimal.Decimal
	Quantity     int
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums the subtotal of every line, keeping duplicates as separate terms.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
