package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adilbekov/timetrack/internal/credential"
	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/adilbekov/timetrack/internal/email"
	"github.com/adilbekov/timetrack/internal/repository"
	"github.com/adilbekov/timetrack/internal/token"
	"github.com/google/uuid"
)

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *token.Service
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Service, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// Register creates a pending user and returns the verification code.
// The duplicate check here gives a clean error on the common path; under a
// concurrent registration race the unique index decides and the losing
// insert still comes back as ErrEmailTaken.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, password string) (string, error) {
	existing, err := u.users.FindByEmail(ctx, emailAddr, nil)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return "", domain.ErrEmailTaken
	}

	hashed, err := credential.HashFrom(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	code := uuid.NewString()
	now := time.Now()
	user := &domain.User{
		ID:               uuid.Must(uuid.NewV7()).String(),
		Email:            emailAddr,
		PasswordHash:     hashed.String(),
		Status:           domain.UserStatusPending,
		Roles:            []domain.Role{domain.RoleUser},
		VerificationCode: &code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := u.users.Create(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	// The code is also returned to the caller, so a failed delivery is not
	// fatal to the registration.
	subject := "Verify your account"
	body := fmt.Sprintf(`<p>Your verification code:</p><p><b>%s</b></p>`, code)
	if err := u.email.Send(ctx, emailAddr, subject, body); err != nil {
		u.logger.WarnContext(ctx, "send verification email", "error", err)
	}

	return code, nil
}

// Verify activates a pending user whose stored code matches exactly.
// The pending-only lookup means "already verified" and "never registered"
// are indistinguishable to the caller, and a repeated verify always fails.
func (u *AuthUsecase) Verify(ctx context.Context, emailAddr, code string) error {
	pending := domain.UserStatusPending
	user, err := u.users.FindByEmail(ctx, emailAddr, &pending)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find pending user: %w", err)
	}

	if user.VerificationCode == nil || *user.VerificationCode != code {
		return domain.ErrInvalidCode
	}

	user.Status = domain.UserStatusActive
	user.VerificationCode = nil
	user.UpdatedAt = time.Now()

	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	return nil
}

// Login exchanges valid credentials of a verified user for a signed access
// token. The verified check runs before the password compare so the caller
// gets a specific "not verified" error.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr, nil)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if user.Status != domain.UserStatusActive {
		return "", domain.ErrUserNotVerified
	}

	if !credential.FromHash(user.PasswordHash).Compare(password) {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID, user.Roles)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}
