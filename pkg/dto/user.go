package dto

import "github.com/shopspring/decimal"

type Me struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Role               string          `json:"role"`
	Balance            decimal.Decimal `json:"balance"`
	InvitationCode     string          `json:"invitation_code"`
	InvitationEarnings decimal.Decimal `json:"invitation_earnings"`
}

type Invitations struct {
	Code     string          `json:"code"`
	Invited  int64           `json:"invited"`
	Earnings decimal.Decimal `json:"earnings"`
}

type Stats struct {
	Users          int64           `json:"users"`
	ApprovedPhotos int64           `json:"approved_photos"`
	TotalPaidOut   decimal.Decimal `json:"total_paid_out"`
}
