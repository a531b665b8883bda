package riskrule

import "github.com/joripage/lob-engine/pkg/engine/model"

// RiskRule is a pre-trade check run before an order reaches the book.
type RiskRule interface {
	Check(add *model.AddOrder) error
}
