package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newStudentsCmd(app *cliApp) *cobra.Command {
	studentsCmd := &cobra.Command{
		Use:   "students",
		Short: "Manage students",
	}

	var page, size int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List students, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := app.services().Students.ListStudents(cmd.Context())
			if err != nil {
				return err
			}
			page, size := helpers.NormalizePage(page, size)
			start, end := helpers.CalculateSliceIndices(page, size, len(students))

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tENROLLED\tCREDITS")
			for _, s := range students[start:end] {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", s.ID, s.FullName(), s.Email, helpers.FormatDate(s.EnrollmentDate), s.TotalCredits)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d, %d student(s)\n", page, helpers.TotalPages(len(students), size), len(students))
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", helpers.DefaultPage, "1-based page number")
	listCmd.Flags().IntVar(&size, "size", helpers.DefaultPageSize, "rows per page")
	studentsCmd.AddCommand(listCmd)

	studentsCmd.AddCommand(&cobra.Command{
		Use:   "delete [student-id]",
		Short: "Delete a student and every dependent record",
		Long: `Delete a student. Grades, attendance, address, fees, book issues, feedback and
emergency contacts go with it; a linked user account is kept with the link cleared.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.services().Students.DeleteStudent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "student %d deleted\n", id)
			return nil
		},
	})

	return studentsCmd
}
