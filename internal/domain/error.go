package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	ErrInvalidInvitation    = errors.New("invalid invitation code")

	ErrPhotoNotFound   = errors.New("photo not found")
	ErrAlreadyReviewed = errors.New("photo already reviewed")

	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrAlreadyProcessed   = errors.New("withdrawal already processed")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidMethod      = errors.New("invalid payment method")

	ErrInvalidReason  = errors.New("rejection reason is required")
	ErrAccountDetails = errors.New("account details are required")

	ErrNotificationNotFound = errors.New("notification not found")
	ErrSettingNotFound      = errors.New("setting not found")
	ErrInvalidSetting       = errors.New("setting values cannot be negative")
)
