package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
)

var userAccountColumns = []string{"user_id", "username", "password_hash", "role", "student_id", "professor_id", "created_at"}

// UserAccountRepository handles user accounts
type UserAccountRepository struct {
	base
}

// NewUserAccountRepository creates a new user account repository
func NewUserAccountRepository(q db.Querier) *UserAccountRepository {
	return &UserAccountRepository{base: newBase(q)}
}

func scanUserAccount(row pgx.Row) (*models.UserAccount, error) {
	var u models.UserAccount
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.StudentID, &u.ProfessorID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts an account and fills in the generated ID and creation time
func (r *UserAccountRepository) Create(ctx context.Context, account *models.UserAccount) error {
	query, args, err := r.sb.Insert("user_accounts").
		Columns("username", "password_hash", "role", "student_id", "professor_id").
		Values(account.Username, account.PasswordHash, account.Role, account.StudentID, account.ProfessorID).
		Suffix("RETURNING user_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user account query: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&account.ID, &account.CreatedAt); err != nil {
		return r.writeError(err, "create", "user account")
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *UserAccountRepository) GetByID(ctx context.Context, id int64) (*models.UserAccount, error) {
	builder := r.sb.Select(userAccountColumns...).
		From("user_accounts").
		Where(squirrel.Eq{"user_id": id})
	return getOne(ctx, r.base, builder, scanUserAccount, "user account", id)
}

// GetByUsername retrieves an account by username
func (r *UserAccountRepository) GetByUsername(ctx context.Context, username string) (*models.UserAccount, error) {
	builder := r.sb.Select(userAccountColumns...).
		From("user_accounts").
		Where(squirrel.Eq{"username": username})
	return getOne(ctx, r.base, builder, scanUserAccount, "user account", username)
}

// UpdatePasswordHash replaces the stored hash
func (r *UserAccountRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	builder := r.sb.Update("user_accounts").
		Set("password_hash", hash).
		Where(squirrel.Eq{"user_id": id})
	return r.exec(ctx, builder, "update", "user account", id)
}

// Delete removes an account and its notifications
func (r *UserAccountRepository) Delete(ctx context.Context, id int64) error {
	builder := r.sb.Delete("user_accounts").Where(squirrel.Eq{"user_id": id})
	return r.exec(ctx, builder, "delete", "user account", id)
}

// NotificationRepository handles notifications
type NotificationRepository struct {
	base
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(q db.Querier) *NotificationRepository {
	return &NotificationRepository{base: newBase(q)}
}

// Create inserts an unread notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query, args, err := r.sb.Insert("notifications").
		Columns("user_id", "message", "is_read").
		Values(notification.UserID, notification.Message, notification.IsRead).
		Suffix("RETURNING notification_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create notification query: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&notification.ID, &notification.CreatedAt); err != nil {
		return r.writeError(err, "create", "notification")
	}
	return nil
}

// GetByUserID lists notifications of an account, newest first
func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Notification, error) {
	builder := r.sb.Select("notification_id", "user_id", "message", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "notification_id DESC")
	return getMany(ctx, r.base, builder, func(row pgx.Row) (*models.Notification, error) {
		var n models.Notification
		if err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		return &n, nil
	}, "notifications")
}

// MarkRead flags a notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	builder := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"notification_id": id})
	return r.exec(ctx, builder, "update", "notification", id)
}
