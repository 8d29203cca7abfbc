package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

const (
	MethodPayPal = "paypal"
	MethodGCash  = "gcash"
)

// Notification categories shown in the user feed.
const (
	NotificationPhotoApproved       = "photo_approved"
	NotificationPhotoRejected       = "photo_rejected"
	NotificationWithdrawalCompleted = "withdrawal_completed"
	NotificationWithdrawalRejected  = "withdrawal_rejected"
	NotificationInvitation          = "invitation"
	NotificationSystem              = "system"
)

// Notification categories shown in the admin feed.
const (
	AdminNotificationNewUser           = "new_user"
	AdminNotificationPhotoPending      = "photo_pending"
	AdminNotificationWithdrawalPending = "withdrawal_pending"
)

type User struct {
	ID                 int64
	Name               string
	Email              string
	Password           string
	Role               string
	Balance            decimal.Decimal
	InvitedBy          *int64
	InvitationCode     string
	InvitationCount    int64
	InvitationEarnings decimal.Decimal
	RegisteredAt       time.Time
}

type Photo struct {
	ID              int64
	UserID          int64
	Title           string
	Description     string
	Tags            []string
	Status          string
	UploadedAt      time.Time
	ReviewedAt      *time.Time
	ReviewedBy      *int64
	RejectionReason string
}

type Withdrawal struct {
	ID              int64
	UserID          int64
	Amount          decimal.Decimal
	Fee             decimal.Decimal
	FinalAmount     decimal.Decimal
	Method          string
	AccountDetails  string
	Status          string
	RequestedAt     time.Time
	ProcessedAt     *time.Time
	ProcessedBy     *int64
	RejectionReason string
}

type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Category  string
	RelatedID *int64
	IsRead    bool
	CreatedAt time.Time
}

// AdminNotification is a feed entry visible to every admin rather than a
// single user.
type AdminNotification struct {
	ID        int64
	Title     string
	Message   string
	Category  string
	RelatedID *int64
	IsRead    bool
	CreatedAt time.Time
}

// CommissionGrant records a referral credit applied during photo approval,
// so the caller can notify the inviter after the transaction commits.
type CommissionGrant struct {
	InviterID int64
	Amount    decimal.Decimal
}

// InvitationSummary is what a user sees on their invitations page.
type InvitationSummary struct {
	Code     string
	Invited  int64
	Earnings decimal.Decimal
}

// Settings are the admin-tunable withdrawal knobs. Fees are percentages.
type Settings struct {
	MinWithdrawalAmount decimal.Decimal
	PayPalFeePercent    decimal.Decimal
	GCashFeePercent     decimal.Decimal
}

type Stats struct {
	Users          int64
	ApprovedPhotos int64
	TotalPaidOut   decimal.Decimal
}
