package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want Currency
	}{
		{"NATIVE", CurrencyNative},
		{"sol", CurrencyNative},
		{"STABLE", CurrencyStable},
		{" usdt ", CurrencyStable},
		{"BTC", Currency("BTC")},
		{"", Currency("")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCurrency(tt.in), "input %q", tt.in)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := &PurchaseIntent{ID: "a", Status: StatusPending}
	cp := p.Clone()
	cp.Status = StatusCompleted

	assert.Equal(t, StatusPending, p.Status)
	assert.Nil(t, (*PurchaseIntent)(nil).Clone())
}
