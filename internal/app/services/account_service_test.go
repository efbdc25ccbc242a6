package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

func TestCheckAccountLink(t *testing.T) {
	id := int64(1)

	tests := []struct {
		name  string
		input CreateAccountInput
		ok    bool
	}{
		{"student linked to student", CreateAccountInput{Role: models.RoleStudent, StudentID: &id}, true},
		{"professor linked to professor", CreateAccountInput{Role: models.RoleProfessor, ProfessorID: &id}, true},
		{"admin linked to a professor", CreateAccountInput{Role: models.RoleAdmin, ProfessorID: &id}, true},
		{"no link", CreateAccountInput{Role: models.RoleAdmin}, false},
		{"both links", CreateAccountInput{Role: models.RoleAdmin, StudentID: &id, ProfessorID: &id}, false},
		{"student role linked to professor", CreateAccountInput{Role: models.RoleStudent, ProfessorID: &id}, false},
		{"professor role linked to student", CreateAccountInput{Role: models.RoleProfessor, StudentID: &id}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkAccountLink(tt.input)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInvalidAccountLink)
		})
	}
}

func TestAccountLifecycle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	student := mustStudent(t, svc, "acct@x.edu")

	account, err := svc.Accounts.CreateAccount(ctx, CreateAccountInput{
		Username:  "  alice  ",
		Password:  "first-password",
		Role:      models.RoleStudent,
		StudentID: &student.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.NotEqual(t, "first-password", account.PasswordHash)
	assert.True(t, fixedNow.Equal(account.CreatedAt))

	_, err = svc.Accounts.CreateAccount(ctx, CreateAccountInput{
		Username: "alice", Password: "another-password", Role: models.RoleStudent, StudentID: &student.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	err = svc.Accounts.ChangePassword(ctx, account.ID, "wrong-password", "second-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	err = svc.Accounts.ChangePassword(ctx, account.ID, "first-password", "short")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	require.NoError(t, svc.Accounts.ChangePassword(ctx, account.ID, "first-password", "second-password"))

	notification, err := svc.Accounts.Notify(ctx, account.ID, "Your fee is due")
	require.NoError(t, err)
	require.NoError(t, svc.Accounts.MarkNotificationRead(ctx, notification.ID))

	notifications, err := svc.Accounts.Notifications(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].IsRead)

	_, err = svc.Accounts.Notify(ctx, 999, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrForeignKeyViolation)

	byName, err := svc.Accounts.GetAccountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byName.ID)

	require.NoError(t, svc.Accounts.DeleteAccount(ctx, account.ID))
	_, err = svc.Accounts.GetAccount(ctx, account.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateAccountRejectsBeforeHashing(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Accounts.CreateAccount(ctx, CreateAccountInput{Username: "x", Password: "long-enough", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Accounts.CreateAccount(ctx, CreateAccountInput{Username: "nolink", Password: "long-enough", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAccountLink)
}
