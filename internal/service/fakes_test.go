package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
)

// fakeLedger is an in-memory stand-in for the postgres repositories. The
// *sql.Tx handles it receives come from a sqlmock database owned by the
// test, so begin/commit/rollback bookkeeping stays observable.
type fakeLedger struct {
	db *sql.DB

	balances map[int64]decimal.Decimal
	earnings map[int64]decimal.Decimal
	invites  map[int64]int64

	users       map[int64]*domain.User
	photos      map[int64]*domain.Photo
	withdrawals map[int64]*domain.Withdrawal

	nextID int64
}

func newFakeLedger(db *sql.DB) *fakeLedger {
	return &fakeLedger{
		db:          db,
		balances:    map[int64]decimal.Decimal{},
		earnings:    map[int64]decimal.Decimal{},
		invites:     map[int64]int64{},
		users:       map[int64]*domain.User{},
		photos:      map[int64]*domain.Photo{},
		withdrawals: map[int64]*domain.Withdrawal{},
		nextID:      100,
	}
}

func (f *fakeLedger) addUser(id int64, name string, balance decimal.Decimal, invitedBy *int64) {
	f.users[id] = &domain.User{
		ID:        id,
		Name:      name,
		Email:     name + "@example.com",
		Role:      domain.RoleUser,
		Balance:   balance,
		InvitedBy: invitedBy,
	}
	f.balances[id] = balance
	f.earnings[id] = decimal.Zero
}

func (f *fakeLedger) addPhoto(id, ownerID int64, title, status string) {
	f.photos[id] = &domain.Photo{
		ID:         id,
		UserID:     ownerID,
		Title:      title,
		Status:     status,
		UploadedAt: time.Now(),
	}
}

func (f *fakeLedger) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return f.db.BeginTx(ctx, nil)
}

func (f *fakeLedger) Photo(_ context.Context, id int64) (*domain.Photo, error) {
	photo, ok := f.photos[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	copied := *photo
	return &copied, nil
}

func (f *fakeLedger) PhotoForReview(ctx context.Context, _ *sql.Tx, id int64) (*domain.Photo, error) {
	return f.Photo(ctx, id)
}

func (f *fakeLedger) ApprovePhoto(_ context.Context, _ *sql.Tx, photoID, reviewerID int64) error {
	photo, ok := f.photos[photoID]
	if !ok {
		return domain.ErrPhotoNotFound
	}
	if photo.Status != domain.StatusPending {
		return domain.ErrAlreadyReviewed
	}
	now := time.Now()
	photo.Status = domain.StatusApproved
	photo.ReviewedAt = &now
	photo.ReviewedBy = &reviewerID
	return nil
}

func (f *fakeLedger) RejectPhoto(_ context.Context, photoID, reviewerID int64, reason string) error {
	photo, ok := f.photos[photoID]
	if !ok {
		return domain.ErrPhotoNotFound
	}
	if photo.Status != domain.StatusPending {
		return domain.ErrAlreadyReviewed
	}
	now := time.Now()
	photo.Status = domain.StatusRejected
	photo.ReviewedAt = &now
	photo.ReviewedBy = &reviewerID
	photo.RejectionReason = reason
	return nil
}

func (f *fakeLedger) CreditBalance(_ context.Context, _ *sql.Tx, userID int64, amount decimal.Decimal) error {
	balance, ok := f.balances[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	f.balances[userID] = balance.Add(amount)
	return nil
}

func (f *fakeLedger) DebitBalance(_ context.Context, _ *sql.Tx, userID int64, amount decimal.Decimal) error {
	balance, ok := f.balances[userID]
	if !ok || balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	f.balances[userID] = balance.Sub(amount)
	return nil
}

func (f *fakeLedger) CreditCommission(_ context.Context, _ *sql.Tx, userID int64, amount decimal.Decimal) error {
	balance, ok := f.balances[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	f.balances[userID] = balance.Add(amount)
	f.earnings[userID] = f.earnings[userID].Add(amount)
	return nil
}

func (f *fakeLedger) CreditSignupBonus(_ context.Context, _ *sql.Tx, userID int64, amount decimal.Decimal) error {
	balance, ok := f.balances[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	f.balances[userID] = balance.Add(amount)
	f.invites[userID]++
	return nil
}

func (f *fakeLedger) InviterOf(_ context.Context, _ *sql.Tx, userID int64) (*int64, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user.InvitedBy, nil
}

func (f *fakeLedger) UserByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	copied.Balance = f.balances[id]
	copied.InvitationEarnings = f.earnings[id]
	copied.InvitationCount = f.invites[id]
	return &copied, nil
}

func (f *fakeLedger) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for id, user := range f.users {
		if user.Email == email {
			return f.UserByID(ctx, id)
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeLedger) InviterIDByCode(_ context.Context, code string) (int64, error) {
	for id, user := range f.users {
		if user.InvitationCode == code {
			return id, nil
		}
	}
	return 0, domain.ErrInvalidInvitation
}

func (f *fakeLedger) CreateUser(_ context.Context, _ *sql.Tx, user domain.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, domain.ErrUserExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = &user
	f.balances[user.ID] = decimal.Zero
	f.earnings[user.ID] = decimal.Zero
	return user.ID, nil
}

func (f *fakeLedger) InvitedCount(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.InvitedBy != nil && *user.InvitedBy == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) CreateWithdrawal(_ context.Context, _ *sql.Tx, w domain.Withdrawal) (int64, error) {
	f.nextID++
	w.ID = f.nextID
	w.RequestedAt = time.Now()
	f.withdrawals[w.ID] = &w
	return w.ID, nil
}

func (f *fakeLedger) Withdrawal(_ context.Context, id int64) (*domain.Withdrawal, error) {
	w, ok := f.withdrawals[id]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeLedger) WithdrawalForUpdate(ctx context.Context, _ *sql.Tx, id int64) (*domain.Withdrawal, error) {
	return f.Withdrawal(ctx, id)
}

func (f *fakeLedger) CompleteWithdrawal(_ context.Context, withdrawalID, adminID int64) error {
	w, ok := f.withdrawals[withdrawalID]
	if !ok {
		return domain.ErrWithdrawalNotFound
	}
	if w.Status != domain.StatusPending {
		return domain.ErrAlreadyProcessed
	}
	now := time.Now()
	w.Status = domain.StatusCompleted
	w.ProcessedAt = &now
	w.ProcessedBy = &adminID
	return nil
}

func (f *fakeLedger) RejectWithdrawal(_ context.Context, _ *sql.Tx, withdrawalID, adminID int64, reason string) error {
	w, ok := f.withdrawals[withdrawalID]
	if !ok {
		return domain.ErrWithdrawalNotFound
	}
	if w.Status != domain.StatusPending {
		return domain.ErrAlreadyProcessed
	}
	now := time.Now()
	w.Status = domain.StatusRejected
	w.ProcessedAt = &now
	w.ProcessedBy = &adminID
	w.RejectionReason = reason
	return nil
}

func (f *fakeLedger) WithdrawalsByUser(_ context.Context, userID int64) ([]domain.Withdrawal, error) {
	var out []domain.Withdrawal
	for _, w := range f.withdrawals {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeLedger) PendingWithdrawals(_ context.Context) ([]domain.Withdrawal, error) {
	var out []domain.Withdrawal
	for _, w := range f.withdrawals {
		if w.Status == domain.StatusPending {
			out = append(out, *w)
		}
	}
	return out, nil
}

type note struct {
	userID   int64
	title    string
	message  string
	category string
}

type fakeNotifier struct {
	notes      []note
	adminNotes []note
}

func (f *fakeNotifier) Notify(_ context.Context, userID int64, title, message, category string, _ *int64) {
	f.notes = append(f.notes, note{userID: userID, title: title, message: message, category: category})
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, title, message, category string, _ *int64) {
	f.adminNotes = append(f.adminNotes, note{title: title, message: message, category: category})
}

type fakeSettings struct {
	min  decimal.Decimal
	fees map[string]decimal.Decimal
}

func (f *fakeSettings) MinWithdrawalAmount(_ context.Context) decimal.Decimal {
	return f.min
}

func (f *fakeSettings) MethodFeePercent(_ context.Context, method string) (decimal.Decimal, error) {
	fee, ok := f.fees[method]
	if !ok {
		return decimal.Zero, domain.ErrInvalidMethod
	}
	return fee, nil
}
