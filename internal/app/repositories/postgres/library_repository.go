package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/dberrors"
	"github.com/yigit/campusrecords/internal/pkg/logger"
)

// OpenIssueIndex is the partial unique index guarding unreturned issues
const OpenIssueIndex = "book_issue_open_issue_idx"

var bookColumns = []string{"book_id", "title", "author", "isbn", "published_year"}

// BookRepository handles library titles
type BookRepository struct {
	base
}

// NewBookRepository creates a new book repository
func NewBookRepository(q db.Querier) *BookRepository {
	return &BookRepository{base: newBase(q)}
}

func scanBook(row pgx.Row) (*models.Book, error) {
	var b models.Book
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedYear); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create adds a title
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	builder := r.sb.Insert("library").
		Columns("title", "author", "isbn", "published_year").
		Values(book.Title, book.Author, book.ISBN, book.PublishedYear).
		Suffix("RETURNING book_id")
	return r.insertReturning(ctx, builder, "book", &book.ID)
}

// GetByID retrieves a title by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	builder := r.sb.Select(bookColumns...).
		From("library").
		Where(squirrel.Eq{"book_id": id})
	return getOne(ctx, r.base, builder, scanBook, "book", id)
}

// GetAll lists every title
func (r *BookRepository) GetAll(ctx context.Context) ([]*models.Book, error) {
	builder := r.sb.Select(bookColumns...).
		From("library").
		OrderBy("book_id")
	return getMany(ctx, r.base, builder, scanBook, "books")
}

// Delete removes a title and its issue history
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	builder := r.sb.Delete("library").Where(squirrel.Eq{"book_id": id})
	return r.exec(ctx, builder, "delete", "book", id)
}

var bookIssueColumns = []string{"issue_id", "student_id", "book_id", "issue_date", "return_date"}

// BookIssueRepository handles book loans
type BookIssueRepository struct {
	base
}

// NewBookIssueRepository creates a new book issue repository
func NewBookIssueRepository(q db.Querier) *BookIssueRepository {
	return &BookIssueRepository{base: newBase(q)}
}

func scanBookIssue(row pgx.Row) (*models.BookIssue, error) {
	var bi models.BookIssue
	if err := row.Scan(&bi.ID, &bi.StudentID, &bi.BookID, &bi.IssueDate, &bi.ReturnDate); err != nil {
		return nil, err
	}
	return &bi, nil
}

// Create records a loan. A second open loan of the same book to the same
// student trips the partial unique index and surfaces as ErrBookAlreadyIssued.
func (r *BookIssueRepository) Create(ctx context.Context, issue *models.BookIssue) error {
	query, args, err := r.sb.Insert("book_issue").
		Columns("student_id", "book_id", "issue_date", "return_date").
		Values(issue.StudentID, issue.BookID, issue.IssueDate, issue.ReturnDate).
		Suffix("RETURNING issue_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create book issue query: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&issue.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, OpenIssueIndex) {
			logger.Warn().Int64("studentID", issue.StudentID).Int64("bookID", issue.BookID).Msg("Book already issued")
			return apperrors.ErrBookAlreadyIssued
		}
		return r.writeError(err, "create", "book issue")
	}
	return nil
}

// GetByID retrieves a loan by ID
func (r *BookIssueRepository) GetByID(ctx context.Context, id int64) (*models.BookIssue, error) {
	builder := r.sb.Select(bookIssueColumns...).
		From("book_issue").
		Where(squirrel.Eq{"issue_id": id})
	return getOne(ctx, r.base, builder, scanBookIssue, "book issue", id)
}

// FindOpen returns and row-locks the unreturned loan of bookID to studentID
func (r *BookIssueRepository) FindOpen(ctx context.Context, studentID, bookID int64) (*models.BookIssue, error) {
	builder := r.sb.Select(bookIssueColumns...).
		From("book_issue").
		Where(squirrel.Eq{"student_id": studentID, "book_id": bookID, "return_date": nil}).
		Suffix("FOR UPDATE")
	return getOne(ctx, r.base, builder, scanBookIssue, "open book issue", fmt.Sprintf("(%d, %d)", studentID, bookID))
}

// GetByStudentID lists the loans of a student, newest first
func (r *BookIssueRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.BookIssue, error) {
	builder := r.sb.Select(bookIssueColumns...).
		From("book_issue").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("issue_date DESC", "issue_id DESC")
	return getMany(ctx, r.base, builder, scanBookIssue, "book issues")
}

// SetReturnDate closes a loan
func (r *BookIssueRepository) SetReturnDate(ctx context.Context, id int64, returnDate time.Time) error {
	builder := r.sb.Update("book_issue").
		Set("return_date", returnDate).
		Where(squirrel.Eq{"issue_id": id})
	return r.exec(ctx, builder, "update", "book issue", id)
}
