package dto

import "github.com/shopspring/decimal"

/**
{
  "amount": "2.00",
  "method": "paypal",
  "accountDetails": "user@example.com"
}
*/

type WithdrawalRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	AccountDetails string          `json:"accountDetails"`
}

type Withdrawal struct {
	ID              int64           `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	FinalAmount     decimal.Decimal `json:"final_amount"`
	Method          string          `json:"method"`
	Status          string          `json:"status"`
	RequestedAt     string          `json:"requested_at"`
	ProcessedAt     string          `json:"processed_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}
