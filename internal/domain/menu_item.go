package domain

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID          uint
	Name        string
	Price       decimal.Decimal
	Description string
}
