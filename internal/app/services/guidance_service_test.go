package services

import (
	"context"
	"testing"

	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guidanceFixture struct {
	guidance *fakeGuidanceStore
	students *fakeStudentStore
	users    *fakeUserStore
	service  GuidanceService
}

func newGuidanceFixture() *guidanceFixture {
	f := &guidanceFixture{
		guidance: newFakeGuidanceStore(),
		students: newFakeStudentStore(),
		users:    newFakeUserStore(),
	}
	f.service = NewGuidanceService(f.guidance, f.students, f.users)
	return f
}

func TestCreateSession_RecordsWaitingSession(t *testing.T) {
	f := newGuidanceFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001"})
	supervisor := f.users.addInstructor(10, "Dr. Ratna")

	resp, err := f.service.CreateSession(context.Background(), 1, &dto.CreateSessionRequest{
		SupervisorID: supervisor.ID,
		WeekNumber:   3,
		Topic:        "Revisi bab 2",
	})

	require.NoError(t, err)
	assert.Equal(t, string(models.SessionWaiting), resp.Status)
	assert.Equal(t, int64(1), resp.StudentID)
	assert.Nil(t, resp.ApprovedAt)
}

func TestCreateSession_QuotaCountsEverySession(t *testing.T) {
	f := newGuidanceFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001"})
	f.users.addInstructor(10, "Dr. Ratna")

	// Seven waiting plus one rejected still exhausts the quota; rejected
	// attempts are not refunded.
	f.guidance.seed(1, models.GuidanceQuota-1, 0)
	resp, err := f.service.CreateSession(context.Background(), 1, &dto.CreateSessionRequest{
		SupervisorID: 10, WeekNumber: 8, Topic: "Bab 4",
	})
	require.NoError(t, err)
	require.NoError(t, f.guidance.SetStatus(context.Background(), resp.ID, models.SessionRejected, nil))

	_, err = f.service.CreateSession(context.Background(), 1, &dto.CreateSessionRequest{
		SupervisorID: 10, WeekNumber: 9, Topic: "Bab 4 ulang",
	})

	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestCreateSession_UnknownSupervisorRejected(t *testing.T) {
	f := newGuidanceFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001"})

	_, err := f.service.CreateSession(context.Background(), 1, &dto.CreateSessionRequest{
		SupervisorID: 99, WeekNumber: 1, Topic: "Bab 1",
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetSessionStatus_ApprovalStampsTime(t *testing.T) {
	f := newGuidanceFixture()
	supervisorID := int64(10)
	f.students.add(models.Student{ID: 1, NPM: "20210801001", Supervisor1ID: &supervisorID})
	f.users.addInstructor(supervisorID, "Dr. Ratna")

	id, err := f.guidance.Create(context.Background(), &models.GuidanceSession{
		StudentID: 1, SupervisorID: supervisorID, WeekNumber: 1, Topic: "Bab 1", Status: models.SessionWaiting,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.SetStatus(context.Background(), id, supervisorID, string(models.SessionApproved)))

	session, err := f.guidance.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.SessionApproved, session.Status)
	assert.NotNil(t, session.ApprovedAt)
}

func TestSetSessionStatus_OnlyAssignedSupervisorMayDecide(t *testing.T) {
	f := newGuidanceFixture()
	supervisorID := int64(10)
	f.students.add(models.Student{ID: 1, NPM: "20210801001", Supervisor1ID: &supervisorID})
	f.users.addInstructor(supervisorID, "Dr. Ratna")
	f.users.addInstructor(11, "Dr. Joko")

	id, err := f.guidance.Create(context.Background(), &models.GuidanceSession{
		StudentID: 1, SupervisorID: supervisorID, WeekNumber: 1, Topic: "Bab 1", Status: models.SessionWaiting,
	})
	require.NoError(t, err)

	err = f.service.SetStatus(context.Background(), id, 11, string(models.SessionApproved))

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSetSessionStatus_ApprovedIsFinal(t *testing.T) {
	f := newGuidanceFixture()
	supervisorID := int64(10)
	f.students.add(models.Student{ID: 1, NPM: "20210801001", Supervisor1ID: &supervisorID})
	f.users.addInstructor(supervisorID, "Dr. Ratna")

	id, err := f.guidance.Create(context.Background(), &models.GuidanceSession{
		StudentID: 1, SupervisorID: supervisorID, WeekNumber: 1, Topic: "Bab 1", Status: models.SessionApproved,
	})
	require.NoError(t, err)

	err = f.service.SetStatus(context.Background(), id, supervisorID, string(models.SessionRejected))

	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestSetSessionStatus_RejectsUnknownStatus(t *testing.T) {
	f := newGuidanceFixture()

	err := f.service.SetStatus(context.Background(), 1, 10, "waiting")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestProgress_ReportsTotalsAgainstQuota(t *testing.T) {
	f := newGuidanceFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001"})
	f.guidance.seed(1, 5, 3)

	progress, err := f.service.Progress(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 5, progress.TotalSessions)
	assert.Equal(t, 3, progress.ApprovedCount)
	assert.Equal(t, models.GuidanceQuota, progress.Quota)
}
