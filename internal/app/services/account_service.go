package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/auth"
	"github.com/yigit/campusrecords/internal/pkg/logger"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// Account errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// CreateAccountInput carries the plain password; only its bcrypt hash is stored
type CreateAccountInput struct {
	Username    string      `validate:"required,min=3,max=50,username"`
	Password    string      `validate:"required,min=8"`
	Role        models.Role `validate:"required,oneof=Student Professor Admin"`
	StudentID   *int64
	ProfessorID *int64
}

// checkAccountLink enforces exactly one link, matching the role where the role implies one
func checkAccountLink(input CreateAccountInput) error {
	hasStudent, hasProfessor := input.StudentID != nil, input.ProfessorID != nil
	if hasStudent == hasProfessor {
		return apperrors.ErrInvalidAccountLink
	}
	switch input.Role {
	case models.RoleStudent:
		if !hasStudent {
			return apperrors.NewCustomError(apperrors.ErrInvalidAccountLink, "student accounts must link a student")
		}
	case models.RoleProfessor:
		if !hasProfessor {
			return apperrors.NewCustomError(apperrors.ErrInvalidAccountLink, "professor accounts must link a professor")
		}
	}
	return nil
}

// AccountService handles user accounts and notifications
type AccountService struct {
	store repositories.Store
}

// NewAccountService creates a new account service
func NewAccountService(store repositories.Store) *AccountService {
	return &AccountService{store: store}
}

// CreateAccount creates an account linked to exactly one student or professor
func (s *AccountService) CreateAccount(ctx context.Context, input CreateAccountInput) (*models.UserAccount, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := checkAccountLink(input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &models.UserAccount{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         input.Role,
		StudentID:    input.StudentID,
		ProfessorID:  input.ProfessorID,
	}
	err = s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.UserAccounts.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", account.ID).Str("username", account.Username).Str("role", string(account.Role)).Msg("Account created")
	return account, nil
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*models.UserAccount, error) {
	var account *models.UserAccount
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		account, err = repos.UserAccounts.GetByID(ctx, id)
		return err
	})
	return account, err
}

// GetAccountByUsername retrieves an account by username
func (s *AccountService) GetAccountByUsername(ctx context.Context, username string) (*models.UserAccount, error) {
	var account *models.UserAccount
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		account, err = repos.UserAccounts.GetByUsername(ctx, strings.TrimSpace(username))
		return err
	})
	return account, err
}

// ChangePassword replaces the credential after checking the current one
func (s *AccountService) ChangePassword(ctx context.Context, id int64, current, next string) error {
	if len(next) < 8 {
		return apperrors.NewValidationError("new password must be at least 8 characters")
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		account, err := repos.UserAccounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !auth.CheckPassword(account.PasswordHash, current) {
			logger.Warn().Int64("userID", id).Msg("Password change rejected")
			return ErrInvalidCredentials
		}
		hash, err := auth.HashPassword(next)
		if err != nil {
			return err
		}
		return repos.UserAccounts.UpdatePasswordHash(ctx, id, hash)
	})
}

// DeleteAccount deletes an account and its notifications
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.UserAccounts.Delete(ctx, id)
	})
}

// Notify queues an unread notification for an account
func (s *AccountService) Notify(ctx context.Context, userID int64, message string) (*models.Notification, error) {
	notification := &models.Notification{UserID: userID, Message: strings.TrimSpace(message)}
	if err := validation.Struct(notification); err != nil {
		return nil, err
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Notifications.Create(ctx, notification)
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}

// Notifications lists the notifications of an account, newest first
func (s *AccountService) Notifications(ctx context.Context, userID int64) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		notifications, err = repos.Notifications.GetByUserID(ctx, userID)
		return err
	})
	return notifications, err
}

// MarkNotificationRead flags a notification as read
func (s *AccountService) MarkNotificationRead(ctx context.Context, id int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Notifications.MarkRead(ctx, id)
	})
}
