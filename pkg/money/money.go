// Package money holds the ledger constants and the currency arithmetic used
// by the balance-mutating services. All amounts are decimals; floats never
// touch the ledger.
package money

import "github.com/shopspring/decimal"

// ReferralDepth is how many invitation hops a commission travels. The
// product pays the direct inviter only.
const ReferralDepth = 1

// Scale is the number of fractional digits stored for every amount.
const Scale = 4

var (
	// PhotoReward is credited to the owner of an approved photo.
	PhotoReward = decimal.RequireFromString("0.01")

	// ReferralRate is the share of a base earning paid to the inviter.
	ReferralRate = decimal.RequireFromString("0.25")

	// SignupBonus is credited to the inviter when an invitation code is
	// used at registration.
	SignupBonus = decimal.RequireFromString("0.10")
)

// Rewards is the reward schedule handed to the ledger services, so tests can
// inject deterministic values instead of reading package globals.
type Rewards struct {
	PhotoReward  decimal.Decimal
	ReferralRate decimal.Decimal
	SignupBonus  decimal.Decimal
}

func DefaultRewards() Rewards {
	return Rewards{
		PhotoReward:  PhotoReward,
		ReferralRate: ReferralRate,
		SignupBonus:  SignupBonus,
	}
}

// Commission computes the inviter's cut of a base earning.
func Commission(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Round(Scale)
}

// Fee computes a percentage fee on a withdrawal amount.
func Fee(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(decimal.NewFromInt(100)).Round(Scale)
}
