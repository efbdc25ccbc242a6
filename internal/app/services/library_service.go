package services

import (
	"context"
	"errors"
	"time"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
	"github.com/yigit/campusrecords/internal/pkg/logger"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// LibraryService handles books and their circulation
type LibraryService struct {
	store repositories.Store
	clock Clock
}

// NewLibraryService creates a new library service
func NewLibraryService(store repositories.Store, clock Clock) *LibraryService {
	return &LibraryService{store: store, clock: clock}
}

// AddBook adds a title to the catalogue
func (s *LibraryService) AddBook(ctx context.Context, book *models.Book) error {
	if book == nil {
		return apperrors.NewBadRequestError("book is required")
	}
	if err := validation.Struct(book); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Books.Create(ctx, book)
	})
}

// GetBook retrieves a title by ID
func (s *LibraryService) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	var book *models.Book
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		book, err = repos.Books.GetByID(ctx, id)
		return err
	})
	return book, err
}

// ListBooks lists the catalogue
func (s *LibraryService) ListBooks(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		books, err = repos.Books.GetAll(ctx)
		return err
	})
	return books, err
}

// RemoveBook deletes a title and its issue history
func (s *LibraryService) RemoveBook(ctx context.Context, id int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Books.Delete(ctx, id)
	})
}

// IssueBook lends a book to a student. It fails with ErrBookAlreadyIssued
// while the student holds an unreturned issue of the same book. A zero
// issueDate means today.
func (s *LibraryService) IssueBook(ctx context.Context, studentID, bookID int64, issueDate time.Time) (*models.BookIssue, error) {
	if issueDate.IsZero() {
		issueDate = s.clock.Today()
	} else {
		issueDate = helpers.TruncateDate(issueDate)
	}

	issue := &models.BookIssue{StudentID: studentID, BookID: bookID, IssueDate: issueDate}
	if err := validation.Struct(issue); err != nil {
		return nil, err
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		open, err := repos.BookIssues.FindOpen(ctx, studentID, bookID)
		switch {
		case err == nil:
			logger.Warn().
				Int64("studentID", studentID).
				Int64("bookID", bookID).
				Int64("openIssueID", open.ID).
				Msg("Rejected duplicate book issue")
			return apperrors.ErrBookAlreadyIssued
		case !errors.Is(err, apperrors.ErrResourceNotFound):
			return err
		}
		return repos.BookIssues.Create(ctx, issue)
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// ReturnBook closes an issue. A zero returnDate means today.
func (s *LibraryService) ReturnBook(ctx context.Context, issueID int64, returnDate time.Time) (*models.BookIssue, error) {
	if returnDate.IsZero() {
		returnDate = s.clock.Today()
	} else {
		returnDate = helpers.TruncateDate(returnDate)
	}

	var issue *models.BookIssue
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		issue, err = repos.BookIssues.GetByID(ctx, issueID)
		if err != nil {
			return err
		}
		if !issue.Open() {
			return apperrors.ErrAlreadyReturned
		}
		if returnDate.Before(issue.IssueDate) {
			return apperrors.NewValidationError("return date must not be before the issue date")
		}
		if err := repos.BookIssues.SetReturnDate(ctx, issueID, returnDate); err != nil {
			return err
		}
		issue.ReturnDate = &returnDate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// IssuesForStudent lists the issues of a student, newest first
func (s *LibraryService) IssuesForStudent(ctx context.Context, studentID int64) ([]*models.BookIssue, error) {
	var issues []*models.BookIssue
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		issues, err = repos.BookIssues.GetByStudentID(ctx, studentID)
		return err
	})
	return issues, err
}
