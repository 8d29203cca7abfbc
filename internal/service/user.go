package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/zaikanghel/Photo-Earn/internal/auth"
	"github.com/zaikanghel/Photo-Earn/internal/config"
	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
	"github.com/zaikanghel/Photo-Earn/pkg/money"
)

const invitationCodeLength = 8

type userRepository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	CreateUser(ctx context.Context, tx *sql.Tx, user domain.User) (int64, error)
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	UserByID(ctx context.Context, id int64) (*domain.User, error)
	InviterIDByCode(ctx context.Context, code string) (int64, error)
	CreditSignupBonus(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error
	InvitedCount(ctx context.Context, userID int64) (int64, error)
}

type UserService struct {
	config   *config.Config
	repo     userRepository
	notifier adminNotifier
	rewards  money.Rewards
}

func NewUserService(repo userRepository, notifier adminNotifier, config *config.Config, rewards money.Rewards) *UserService {
	return &UserService{
		config:   config,
		repo:     repo,
		notifier: notifier,
		rewards:  rewards,
	}
}

// Register creates the account and, when an invitation code was used, pays
// the inviter's signup bonus in the same transaction.
func (s *UserService) Register(ctx context.Context, name, email, password, invitationCode string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.Warn("error while hashing password")
		return "", fmt.Errorf("error while hashing password: %w", err)
	}

	var invitedBy *int64
	if invitationCode != "" {
		inviterID, err := s.repo.InviterIDByCode(ctx, invitationCode)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInvitation) {
				logger.Log.Warn("invalid invitation code", logger.String("code", invitationCode))
			}
			return "", err
		}
		invitedBy = &inviterID
	}

	user := domain.User{
		Name:           name,
		Email:          email,
		Password:       string(hashedPassword),
		Role:           domain.RoleUser,
		InvitedBy:      invitedBy,
		InvitationCode: generateInvitationCode(),
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return "", fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	userID, err := s.repo.CreateUser(ctx, tx, user)
	if err != nil {
		return "", err
	}

	if invitedBy != nil {
		if err = s.repo.CreditSignupBonus(ctx, tx, *invitedBy, s.rewards.SignupBonus); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("error committing transaction: %w", err)
	}

	if invitedBy != nil {
		s.notifier.Notify(ctx, *invitedBy, "New Invitation Used",
			fmt.Sprintf("%s has joined using your invitation code. You've earned $%s!",
				name, s.rewards.SignupBonus.StringFixed(2)),
			domain.NotificationInvitation, &userID)
	}

	s.notifier.NotifyAdmins(ctx, "New User",
		fmt.Sprintf("%s has registered.", name),
		domain.AdminNotificationNewUser, &userID)

	return auth.GenerateToken(userID, domain.RoleUser, s.config.PrivateKey)
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Log.Warn("incorrect email", logger.String("email", email))
			return "", domain.ErrIncorrectCredentials
		}
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		logger.Log.Warn("incorrect password", logger.String("email", email))
		return "", domain.ErrIncorrectCredentials
	}

	return auth.GenerateToken(user.ID, user.Role, s.config.PrivateKey)
}

func (s *UserService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.UserByID(ctx, userID)
}

func (s *UserService) Invitations(ctx context.Context, userID int64) (*domain.InvitationSummary, error) {
	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	invited, err := s.repo.InvitedCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.InvitationSummary{
		Code:     user.InvitationCode,
		Invited:  invited,
		Earnings: user.InvitationEarnings,
	}, nil
}

func generateInvitationCode() string {
	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(code[:invitationCodeLength])
}
