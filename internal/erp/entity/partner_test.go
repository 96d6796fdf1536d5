package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCustomerWithinCreditLimit(t *testing.T) {
	c := &Customer{
		CreditLimit: decimal.Zero,
		Outstanding: decimal.NewFromInt(100000),
	}
	if !c.WithinCreditLimit(decimal.NewFromInt(50000)) {
		t.Error("zero credit limit should mean unenforced")
	}

	c.CreditLimit = decimal.NewFromInt(100000)
	c.Outstanding = decimal.NewFromInt(60000)
	if !c.WithinCreditLimit(decimal.NewFromInt(40000)) {
		t.Error("exactly at the limit should pass")
	}
	if c.WithinCreditLimit(decimal.NewFromInt(40001)) {
		t.Error("over the limit should fail")
	}
}
