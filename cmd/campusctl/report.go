package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func newReportCmd(app *cliApp) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the reporting views",
	}

	reportCmd.AddCommand(&cobra.Command{
		Use:   "profiles",
		Short: "Students with department, city and total credits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.services().Reports.StudentProfiles(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDEPARTMENT\tCITY\tCREDITS")
			for _, r := range rows {
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%d\n",
					r.StudentID, r.FirstName, r.LastName, r.Email, orDash(r.DepartmentName), orDash(r.City), r.TotalCredits)
			}
			return w.Flush()
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "enrollment",
		Short: "One row per student enrolled in a course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.services().Reports.CourseEnrollment(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "COURSE\tNAME\tPROFESSOR\tSTUDENT\tSEMESTER\tGRADE")
			for _, r := range rows {
				grade := "-"
				if r.Grade != nil {
					grade = string(*r.Grade)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.CourseCode, r.CourseName, orDash(r.ProfessorName), r.StudentName, r.Semester, grade)
			}
			return w.Flush()
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "attendance",
		Short: "Attendance percentage per student and course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.services().Reports.AttendanceReport(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "STUDENT\tCOURSE\tSESSIONS\tPRESENT\tPERCENT")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\n",
					r.StudentName, r.CourseCode, r.TotalSessions, r.PresentCount, r.AttendancePercentage)
			}
			return w.Flush()
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "professors",
		Short: "Professors with the courses they teach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.services().Reports.ProfessorCourses(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "PROFESSOR\tDEPARTMENT\tCOURSE\tCREDITS")
			for _, r := range rows {
				credits := "-"
				if r.Credits != nil {
					credits = strconv.Itoa(*r.Credits)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ProfessorName, orDash(r.DepartmentName), orDash(r.CourseCode), credits)
			}
			return w.Flush()
		},
	})

	return reportCmd
}
