package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories/memory"
	appServices "github.com/yigit/campusrecords/internal/app/services"
	"github.com/yigit/campusrecords/internal/pkg/auth"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC) }
	svc := appServices.NewServices(memory.NewStore(memory.WithClock(now)), appServices.WithNow(now))
	ctx := context.Background()

	require.NoError(t, CreateDefaultData(ctx, svc, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, svc, zerolog.Nop()))

	departments, err := svc.Departments.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 2)
	for _, d := range departments {
		assert.NotNil(t, d.HeadID, d.Name)
	}

	professors, err := svc.Professors.ListProfessors(ctx)
	require.NoError(t, err)
	assert.Len(t, professors, 2)

	courses, err := svc.Courses.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 3)

	students, err := svc.Students.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	credits := map[string]int{}
	for _, s := range students {
		credits[s.FirstName] = s.TotalCredits
	}
	assert.Equal(t, map[string]int{"Alice": 9, "Bob": 4}, credits)

	books, err := svc.Library.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)

	loans := map[string]bool{}
	for _, s := range students {
		issues, err := svc.Library.IssuesForStudent(ctx, s.ID)
		require.NoError(t, err)
		require.Len(t, issues, 1, s.FirstName)
		assert.Equal(t, books[0].ID, issues[0].BookID)
		loans[s.FirstName] = issues[0].Open()
	}
	assert.Equal(t, map[string]bool{"Alice": false, "Bob": true}, loans)

	alice, err := svc.Accounts.GetAccountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, appModels.RoleStudent, alice.Role)
	assert.True(t, auth.CheckPassword(alice.PasswordHash, DefaultPassword))

	ada, err := svc.Accounts.GetAccountByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.NotNil(t, ada.ProfessorID)

	attendance, err := svc.Reports.AttendanceReport(ctx)
	require.NoError(t, err)
	require.Len(t, attendance, 1)
	assert.Equal(t, 3, attendance[0].TotalSessions)
}

func TestSeededOverdueFeeIsPickedUpBySweep(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC) }
	svc := appServices.NewServices(memory.NewStore(memory.WithClock(now)), appServices.WithNow(now))
	ctx := context.Background()
	require.NoError(t, CreateDefaultData(ctx, svc, zerolog.Nop()))

	result, err := svc.Fees.EscalateOverdueFees(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Affected)
}
