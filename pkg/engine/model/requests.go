package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddOrder struct {
	Account      string
	Symbol       string
	Side         OrderSide
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	TransactTime time.Time
}

type CancelOrder struct {
	OrderID int64
	Symbol  string
}
