package dto

import "github.com/shopspring/decimal"

type Settings struct {
	MinWithdrawalAmount decimal.Decimal `json:"minWithdrawalAmount"`
	PayPalFee           decimal.Decimal `json:"paypalFee"`
	GCashFee            decimal.Decimal `json:"gcashFee"`
}
