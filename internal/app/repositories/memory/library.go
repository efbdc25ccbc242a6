package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

func cloneBook(b models.Book) *models.Book {
	b.ISBN = clonePtr(b.ISBN)
	b.PublishedYear = clonePtr(b.PublishedYear)
	return &b
}

func cloneIssue(i models.BookIssue) *models.BookIssue {
	i.ReturnDate = clonePtr(i.ReturnDate)
	return &i
}

type bookRepo struct{ s *Store }

func (r *bookRepo) Create(_ context.Context, book *models.Book) error {
	t := r.s.data
	if book.ISBN != nil {
		for _, other := range t.books {
			if other.ISBN != nil && *other.ISBN == *book.ISBN {
				return duplicate("library_isbn_key")
			}
		}
	}
	book.ID = t.next("library")
	t.books[book.ID] = *cloneBook(*book)
	return nil
}

func (r *bookRepo) GetByID(_ context.Context, id int64) (*models.Book, error) {
	b, ok := r.s.data.books[id]
	if !ok {
		return nil, notFound("book", id)
	}
	return cloneBook(b), nil
}

func (r *bookRepo) GetAll(_ context.Context) ([]*models.Book, error) {
	return list(r.s.data.books, nil, cloneBook, func(a, b *models.Book) bool {
		return a.ID < b.ID
	}), nil
}

func (r *bookRepo) Delete(_ context.Context, id int64) error {
	t := r.s.data
	if _, ok := t.books[id]; !ok {
		return notFound("book", id)
	}
	delete(t.books, id)
	for iid, i := range t.issues {
		if i.BookID == id {
			delete(t.issues, iid)
		}
	}
	return nil
}

type bookIssueRepo struct{ s *Store }

func returnDateValid(issueDate time.Time, returnDate *time.Time) bool {
	return returnDate == nil || dateKey(*returnDate) >= dateKey(issueDate)
}

func (r *bookIssueRepo) Create(_ context.Context, issue *models.BookIssue) error {
	t := r.s.data
	if !returnDateValid(issue.IssueDate, issue.ReturnDate) {
		return checkFailed("book_issue_return_date_check")
	}
	if err := t.studentRef(issue.StudentID, "book_issue_student_id_fkey"); err != nil {
		return err
	}
	if _, ok := t.books[issue.BookID]; !ok {
		return foreignKey("book_issue_book_id_fkey")
	}
	if issue.ReturnDate == nil {
		for _, other := range t.issues {
			if other.StudentID == issue.StudentID && other.BookID == issue.BookID && other.Open() {
				return apperrors.ErrBookAlreadyIssued
			}
		}
	}
	issue.ID = t.next("book_issue")
	t.issues[issue.ID] = *cloneIssue(*issue)
	return nil
}

func (r *bookIssueRepo) GetByID(_ context.Context, id int64) (*models.BookIssue, error) {
	i, ok := r.s.data.issues[id]
	if !ok {
		return nil, notFound("book issue", id)
	}
	return cloneIssue(i), nil
}

func (r *bookIssueRepo) FindOpen(_ context.Context, studentID, bookID int64) (*models.BookIssue, error) {
	for _, i := range r.s.data.issues {
		if i.StudentID == studentID && i.BookID == bookID && i.Open() {
			return cloneIssue(i), nil
		}
	}
	return nil, notFound("open book issue", fmt.Sprintf("(%d, %d)", studentID, bookID))
}

func (r *bookIssueRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.BookIssue, error) {
	return list(r.s.data.issues, func(i models.BookIssue) bool {
		return i.StudentID == studentID
	}, cloneIssue, func(a, b *models.BookIssue) bool {
		if !a.IssueDate.Equal(b.IssueDate) {
			return a.IssueDate.After(b.IssueDate)
		}
		return a.ID > b.ID
	}), nil
}

func (r *bookIssueRepo) SetReturnDate(_ context.Context, id int64, returnDate time.Time) error {
	t := r.s.data
	i, ok := t.issues[id]
	if !ok {
		return notFound("book issue", id)
	}
	if !returnDateValid(i.IssueDate, &returnDate) {
		return checkFailed("book_issue_return_date_check")
	}
	i.ReturnDate = &returnDate
	t.issues[id] = i
	return nil
}
