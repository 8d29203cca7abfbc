package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommission(t *testing.T) {
	tests := []struct {
		name string
		base string
		rate string
		want string
	}{
		{name: "photo reward cut", base: "0.01", rate: "0.25", want: "0.0025"},
		{name: "whole dollar", base: "1.00", rate: "0.25", want: "0.25"},
		{name: "rounds to four places", base: "0.0101", rate: "0.25", want: "0.0025"},
		{name: "zero base", base: "0", rate: "0.25", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Commission(decimal.RequireFromString(tt.base), decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFee(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		percent string
		want    string
	}{
		{name: "two percent", amount: "10.00", percent: "2", want: "0.2"},
		{name: "zero percent", amount: "10.00", percent: "0", want: "0"},
		{name: "fractional percent", amount: "3.33", percent: "1.5", want: "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fee(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.percent))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDefaultRewards(t *testing.T) {
	rewards := DefaultRewards()

	assert.Equal(t, "0.01", rewards.PhotoReward.String())
	assert.Equal(t, "0.25", rewards.ReferralRate.String())
	assert.Equal(t, "0.1", rewards.SignupBonus.String())
}
