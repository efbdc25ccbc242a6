package models

import "time"

// Book is a title held by the library
type Book struct {
	ID            int64   `json:"bookId" db:"book_id"`
	Title         string  `json:"title" db:"title" validate:"required,max=200"`
	Author        string  `json:"author" db:"author" validate:"required,max=100"`
	ISBN          *string `json:"isbn,omitempty" db:"isbn" validate:"omitempty,max=20"`
	PublishedYear *int    `json:"publishedYear,omitempty" db:"published_year" validate:"omitempty,min=1000,max=9999"`
}

// BookIssue is one loan of a book to a student. A nil ReturnDate marks an open issue.
type BookIssue struct {
	ID         int64      `json:"issueId" db:"issue_id"`
	StudentID  int64      `json:"studentId" db:"student_id" validate:"required"`
	BookID     int64      `json:"bookId" db:"book_id" validate:"required"`
	IssueDate  time.Time  `json:"issueDate" db:"issue_date" validate:"required"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
}

// Open reports whether the book has not been returned yet
func (b *BookIssue) Open() bool {
	return b.ReturnDate == nil
}
