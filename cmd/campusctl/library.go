package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
)

func newLibraryCmd(app *cliApp) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Lend and take back library books",
	}

	libraryCmd.AddCommand(&cobra.Command{
		Use:   "issues [student-id]",
		Short: "List the book issues of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			issues, err := app.services().Library.IssuesForStudent(cmd.Context(), studentID)
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ISSUE\tBOOK\tISSUED\tRETURNED")
			for _, i := range issues {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", i.ID, i.BookID, helpers.FormatDate(i.IssueDate), helpers.FormatOptionalDate(i.ReturnDate))
			}
			return w.Flush()
		},
	})

	libraryCmd.AddCommand(&cobra.Command{
		Use:   "issue [student-id] [book-id]",
		Short: "Lend a book to a student today",
		Long:  `Lend a book to a student. A student cannot hold two unreturned issues of the same book.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			bookID, err := parseID(args[1])
			if err != nil {
				return err
			}
			issue, err := app.services().Library.IssueBook(cmd.Context(), studentID, bookID, time.Time{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "issue %d opened on %s\n", issue.ID, helpers.FormatDate(issue.IssueDate))
			return nil
		},
	})

	libraryCmd.AddCommand(&cobra.Command{
		Use:   "return [issue-id]",
		Short: "Take a book back today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueID, err := parseID(args[0])
			if err != nil {
				return err
			}
			issue, err := app.services().Library.ReturnBook(cmd.Context(), issueID, time.Time{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "issue %d returned on %s\n", issue.ID, helpers.FormatOptionalDate(issue.ReturnDate))
			return nil
		},
	})

	return libraryCmd
}
