package riskrule

import (
	"testing"

	"github.com/joripage/lob-engine/pkg/engine/model"
	"github.com/shopspring/decimal"
)

func TestTickSizeRule(t *testing.T) {
	rule := NewTickSizeRule(decimal.NewFromFloat(0.01), map[string]decimal.Decimal{
		"BTCUSD": decimal.NewFromFloat(0.5),
	})

	ok := &model.AddOrder{Symbol: "ABC", Price: decimal.NewFromFloat(100.25)}
	if err := rule.Check(ok); err != nil {
		t.Errorf("aligned price rejected: %v", err)
	}

	bad := &model.AddOrder{Symbol: "ABC", Price: decimal.NewFromFloat(100.255)}
	if err := rule.Check(bad); err == nil {
		t.Errorf("unaligned price must be rejected")
	}

	btc := &model.AddOrder{Symbol: "BTCUSD", Price: decimal.NewFromFloat(100.25)}
	if err := rule.Check(btc); err == nil {
		t.Errorf("price must align to the symbol override tick 0.5")
	}
	btc.Price = decimal.NewFromFloat(100.5)
	if err := rule.Check(btc); err != nil {
		t.Errorf("aligned override price rejected: %v", err)
	}
}

func TestLimitPriceRule(t *testing.T) {
	rule := NewLimitPriceRule()
	rule.SetBand("ABC", decimal.NewFromInt(90), decimal.NewFromInt(110))

	inside := &model.AddOrder{Symbol: "ABC", Price: decimal.NewFromInt(100)}
	if err := rule.Check(inside); err != nil {
		t.Errorf("in-band price rejected: %v", err)
	}

	above := &model.AddOrder{Symbol: "ABC", Price: decimal.NewFromInt(111)}
	if err := rule.Check(above); err == nil {
		t.Errorf("price above band must be rejected")
	}

	below := &model.AddOrder{Symbol: "ABC", Price: decimal.NewFromInt(89)}
	if err := rule.Check(below); err == nil {
		t.Errorf("price below band must be rejected")
	}

	other := &model.AddOrder{Symbol: "XYZ", Price: decimal.NewFromInt(1)}
	if err := rule.Check(other); err != nil {
		t.Errorf("symbol without band must pass: %v", err)
	}
}
