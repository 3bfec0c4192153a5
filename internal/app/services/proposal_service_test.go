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

type proposalFixture struct {
	tx       *fakeTxRunner
	students *fakeStudentStore
	users    *fakeUserStore
	service  ProposalService
}

func newProposalFixture() *proposalFixture {
	f := &proposalFixture{
		tx:       &fakeTxRunner{},
		students: newFakeStudentStore(),
		users:    newFakeUserStore(),
	}
	f.service = NewProposalService(f.tx, f.students, f.users)
	return f
}

func trackPtr(t models.Track) *models.Track { return &t }

func (f *proposalFixture) addPair(kelompokID int64) (a, b *models.Student) {
	a = f.students.add(models.Student{ID: 1, NPM: "20210801001", Track: trackPtr(models.TrackProyek1), KelompokID: &kelompokID})
	b = f.students.add(models.Student{ID: 2, NPM: "20210801002", Track: trackPtr(models.TrackProyek1), KelompokID: &kelompokID})
	return a, b
}

func TestSubmitProposal_RequiresTrack(t *testing.T) {
	f := newProposalFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001"})

	_, err := f.service.Submit(context.Background(), 1, &dto.SubmitProposalRequest{
		Title:   "Sistem Absensi",
		FileURL: "https://files.kampus.ac.id/p/1.pdf",
	})

	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestSubmitProposal_FansOutToWholeKelompok(t *testing.T) {
	f := newProposalFixture()
	f.addPair(5)
	supervisor := f.users.addInstructor(10, "Dr. Ratna")

	resp, err := f.service.Submit(context.Background(), 1, &dto.SubmitProposalRequest{
		Title:        "Sistem Absensi",
		FileURL:      "https://files.kampus.ac.id/p/1.pdf",
		SupervisorID: &supervisor.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, string(models.ProposalPending), resp.Status)
	assert.ElementsMatch(t, []int64{1, 2}, resp.MemberIDs)
	assert.Equal(t, 1, f.tx.calls)

	for _, id := range []int64{1, 2} {
		st, err := f.students.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Sistem Absensi", st.ProposalTitle)
		assert.Equal(t, models.ProposalPending, st.ProposalStatus)
		require.NotNil(t, st.Supervisor1ID)
		assert.Equal(t, supervisor.ID, *st.Supervisor1ID)
	}
}

func TestSubmitProposal_SoloStudentTouchesOnlyOwnRow(t *testing.T) {
	f := newProposalFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001", Track: trackPtr(models.TrackMagang)})
	f.students.add(models.Student{ID: 2, NPM: "20210801002", Track: trackPtr(models.TrackMagang)})

	resp, err := f.service.Submit(context.Background(), 1, &dto.SubmitProposalRequest{
		Title:   "Laporan Magang",
		FileURL: "https://files.kampus.ac.id/p/2.pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resp.MemberIDs)

	other, err := f.students.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalNone, other.ProposalStatus)
}

func TestSubmitProposal_BlockedWhilePendingOrApproved(t *testing.T) {
	for _, status := range []models.ProposalStatus{models.ProposalPending, models.ProposalApproved} {
		t.Run(string(status), func(t *testing.T) {
			f := newProposalFixture()
			f.students.add(models.Student{ID: 1, NPM: "20210801001", Track: trackPtr(models.TrackMagang), ProposalStatus: status})

			_, err := f.service.Submit(context.Background(), 1, &dto.SubmitProposalRequest{
				Title:   "Ulang",
				FileURL: "https://files.kampus.ac.id/p/3.pdf",
			})

			assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
		})
	}
}

func TestSubmitProposal_RejectedAllowsResubmission(t *testing.T) {
	f := newProposalFixture()
	f.students.add(models.Student{
		ID: 1, NPM: "20210801001", Track: trackPtr(models.TrackMagang),
		ProposalStatus: models.ProposalRejected, ProposalTitle: "Versi Lama",
	})

	resp, err := f.service.Submit(context.Background(), 1, &dto.SubmitProposalRequest{
		Title:   "Versi Baru",
		FileURL: "https://files.kampus.ac.id/p/4.pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, string(models.ProposalPending), resp.Status)

	st, err := f.students.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Versi Baru", st.ProposalTitle)
	assert.Equal(t, models.ProposalPending, st.ProposalStatus)
}

func TestSubmitProposal_UnknownSupervisorRejected(t *testing.T) {
	f := newProposalFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001", Track: trackPtr(models.TrackMagang)})
	missing := int64(99)

	_, err := f.service.Submit(context.Background(), 1, &dto.SubmitProposalRequest{
		Title:        "Sistem Absensi",
		FileURL:      "https://files.kampus.ac.id/p/5.pdf",
		SupervisorID: &missing,
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetProposalStatus_AppliesToSingleRowOnly(t *testing.T) {
	f := newProposalFixture()
	f.addPair(5)
	require.NoError(t, f.students.BroadcastProposal(context.Background(), nil, []int64{1, 2}, "Sistem Absensi", "https://files.kampus.ac.id/p/1.pdf", nil))

	err := f.service.SetStatus(context.Background(), 1, string(models.ProposalApproved))
	require.NoError(t, err)

	first, err := f.students.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalApproved, first.ProposalStatus)

	second, err := f.students.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalPending, second.ProposalStatus, "decisions do not fan out on their own")
}

func TestSetProposalStatus_RejectsUnknownStatus(t *testing.T) {
	f := newProposalFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001", ProposalStatus: models.ProposalPending})

	err := f.service.SetStatus(context.Background(), 1, "maybe")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSetProposalStatus_NoProposalToDecide(t *testing.T) {
	f := newProposalFixture()
	f.students.add(models.Student{ID: 1, NPM: "20210801001"})

	err := f.service.SetStatus(context.Background(), 1, string(models.ProposalApproved))

	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestMembersOf_ReturnsGroupOrSelf(t *testing.T) {
	f := newProposalFixture()
	f.addPair(5)
	f.students.add(models.Student{ID: 3, NPM: "20210801003", Track: trackPtr(models.TrackMagang)})

	members, err := f.service.MembersOf(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	solo, err := f.service.MembersOf(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, solo, 1)
	assert.Equal(t, int64(3), solo[0].ID)
}
