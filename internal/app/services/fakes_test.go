package services

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/db"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
)

// In-memory stand-ins for the pgx repositories. They mirror the repository
// semantics closely enough for service-level behavior tests; transactional
// callbacks run against a nil pgx.Tx since none of the fakes touch it.

type fakeTxRunner struct {
	calls int
	err   error
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx, nil)
}

type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (f *fakeStudentStore) add(st models.Student) *models.Student {
	if st.ID == 0 {
		st.ID = f.nextID
	}
	if st.ID >= f.nextID {
		f.nextID = st.ID + 1
	}
	if st.ProposalStatus == "" {
		st.ProposalStatus = models.ProposalNone
	}
	f.students[st.ID] = &st
	return f.students[st.ID]
}

func cloneStudent(st *models.Student) *models.Student {
	out := *st
	return &out
}

func (f *fakeStudentStore) Create(ctx context.Context, tx pgx.Tx, student *models.Student) (int64, error) {
	for _, existing := range f.students {
		if existing.NPM == student.NPM {
			return 0, apperrors.ErrNPMAlreadyExists
		}
	}
	created := f.add(*student)
	return created.ID, nil
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	st, ok := f.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("student %d not found", id)
	}
	return cloneStudent(st), nil
}

func (f *fakeStudentStore) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	for _, st := range f.students {
		if st.UserID == userID {
			return cloneStudent(st), nil
		}
	}
	return nil, apperrors.NewNotFoundError("no student record for user %d", userID)
}

func (f *fakeStudentStore) GetByNPM(ctx context.Context, npm string) (*models.Student, error) {
	for _, st := range f.students {
		if st.NPM == npm {
			return cloneStudent(st), nil
		}
	}
	return nil, apperrors.NewNotFoundError("student with npm %s not found", npm)
}

func (f *fakeStudentStore) LockByID(ctx context.Context, tx pgx.Tx, id int64) (*models.Student, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeStudentStore) LockPairByNPM(ctx context.Context, tx pgx.Tx, npmA, npmB string) ([]models.Student, error) {
	var out []models.Student
	for _, st := range f.students {
		if st.NPM == npmA || st.NPM == npmB {
			out = append(out, *cloneStudent(st))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NPM < out[j].NPM })
	return out, nil
}

func (f *fakeStudentStore) UpdateTrackSelection(ctx context.Context, tx pgx.Tx, id int64, track models.Track, partnerNPM *string) error {
	st, ok := f.students[id]
	if !ok {
		return apperrors.NewNotFoundError("student %d not found", id)
	}
	t := track
	st.Track = &t
	st.DesiredPartnerNPM = partnerNPM
	return nil
}

func (f *fakeStudentStore) AssignKelompok(ctx context.Context, tx pgx.Tx, kelompokID int64, studentIDs []int64) error {
	for _, id := range studentIDs {
		st, ok := f.students[id]
		if !ok {
			return apperrors.NewNotFoundError("student %d not found", id)
		}
		kid := kelompokID
		st.KelompokID = &kid
		st.DesiredPartnerNPM = nil
	}
	return nil
}

func (f *fakeStudentStore) ListByKelompok(ctx context.Context, kelompokID int64) ([]models.Student, error) {
	var out []models.Student
	for _, st := range f.students {
		if st.KelompokID != nil && *st.KelompokID == kelompokID {
			out = append(out, *cloneStudent(st))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStudentStore) BroadcastProposal(ctx context.Context, tx pgx.Tx, studentIDs []int64, title, fileURL string, supervisorID *int64) error {
	for _, id := range studentIDs {
		st, ok := f.students[id]
		if !ok {
			return apperrors.NewNotFoundError("student %d not found", id)
		}
		st.ProposalTitle = title
		st.ProposalFileURL = fileURL
		st.ProposalStatus = models.ProposalPending
		if supervisorID != nil {
			sid := *supervisorID
			st.Supervisor1ID = &sid
		}
	}
	return nil
}

func (f *fakeStudentStore) SetProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error {
	st, ok := f.students[id]
	if !ok {
		return apperrors.NewNotFoundError("student %d not found", id)
	}
	st.ProposalStatus = status
	return nil
}

func (f *fakeStudentStore) ResetAcademicCycle(ctx context.Context, tx pgx.Tx) error {
	for _, st := range f.students {
		st.Track = nil
		st.DesiredPartnerNPM = nil
		st.KelompokID = nil
		st.ProposalTitle = ""
		st.ProposalFileURL = ""
		st.ProposalStatus = models.ProposalNone
		st.Supervisor1ID = nil
		st.Supervisor2ID = nil
	}
	return nil
}

type fakeKelompokStore struct {
	groups map[int64]*models.Kelompok
	nextID int64
}

func newFakeKelompokStore() *fakeKelompokStore {
	return &fakeKelompokStore{groups: make(map[int64]*models.Kelompok), nextID: 1}
}

func (f *fakeKelompokStore) Create(ctx context.Context, tx pgx.Tx, kelompok *models.Kelompok) (int64, error) {
	k := *kelompok
	k.ID = f.nextID
	f.nextID++
	f.groups[k.ID] = &k
	return k.ID, nil
}

func (f *fakeKelompokStore) GetByID(ctx context.Context, id int64) (*models.Kelompok, error) {
	k, ok := f.groups[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("kelompok %d not found", id)
	}
	out := *k
	return &out, nil
}

func (f *fakeKelompokStore) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	f.groups = make(map[int64]*models.Kelompok)
	return nil
}

type fakeGuidanceStore struct {
	sessions map[int64]*models.GuidanceSession
	nextID   int64
}

func newFakeGuidanceStore() *fakeGuidanceStore {
	return &fakeGuidanceStore{sessions: make(map[int64]*models.GuidanceSession), nextID: 1}
}

func (f *fakeGuidanceStore) seed(studentID int64, total, approved int) {
	for i := 0; i < total; i++ {
		status := models.SessionWaiting
		if i < approved {
			status = models.SessionApproved
		}
		f.sessions[f.nextID] = &models.GuidanceSession{
			ID:           f.nextID,
			StudentID:    studentID,
			SupervisorID: 1,
			WeekNumber:   i + 1,
			Topic:        "seeded",
			Status:       status,
		}
		f.nextID++
	}
}

func (f *fakeGuidanceStore) Create(ctx context.Context, session *models.GuidanceSession) (int64, error) {
	s := *session
	s.ID = f.nextID
	f.nextID++
	f.sessions[s.ID] = &s
	return s.ID, nil
}

func (f *fakeGuidanceStore) GetByID(ctx context.Context, id int64) (*models.GuidanceSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("guidance session %d not found", id)
	}
	out := *s
	return &out, nil
}

func (f *fakeGuidanceStore) CountByStudent(ctx context.Context, studentID int64) (int, error) {
	n := 0
	for _, s := range f.sessions {
		if s.StudentID == studentID {
			n++
		}
	}
	return n, nil
}

func (f *fakeGuidanceStore) CountApprovedByStudent(ctx context.Context, studentID int64) (int, error) {
	n := 0
	for _, s := range f.sessions {
		if s.StudentID == studentID && s.Status == models.SessionApproved {
			n++
		}
	}
	return n, nil
}

func (f *fakeGuidanceStore) ListByStudent(ctx context.Context, studentID int64) ([]models.GuidanceSession, error) {
	var out []models.GuidanceSession
	for _, s := range f.sessions {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGuidanceStore) SetStatus(ctx context.Context, id int64, status models.SessionStatus, approvedAt *time.Time) error {
	s, ok := f.sessions[id]
	if !ok {
		return apperrors.NewNotFoundError("guidance session %d not found", id)
	}
	s.Status = status
	s.ApprovedAt = approvedAt
	return nil
}

func (f *fakeGuidanceStore) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	f.sessions = make(map[int64]*models.GuidanceSession)
	return nil
}

type fakeExamStore struct {
	reports   map[int64]*models.ExamReport
	schedules map[int64]*models.ExamSchedule
	nextID    int64
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{
		reports:   make(map[int64]*models.ExamReport),
		schedules: make(map[int64]*models.ExamSchedule),
		nextID:    1,
	}
}

func (f *fakeExamStore) GetReportByID(ctx context.Context, id int64) (*models.ExamReport, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("exam report %d not found", id)
	}
	out := *r
	return &out, nil
}

func (f *fakeExamStore) GetReportByStudent(ctx context.Context, studentID int64) (*models.ExamReport, error) {
	for _, r := range f.reports {
		if r.StudentID == studentID {
			out := *r
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no exam report for student %d", studentID)
}

func (f *fakeExamStore) UpsertReports(ctx context.Context, tx pgx.Tx, studentIDs []int64, fileURL string) error {
	for _, id := range studentIDs {
		existing, err := f.GetReportByStudent(ctx, id)
		if err == nil {
			r := f.reports[existing.ID]
			r.FileURL = fileURL
			r.Status = models.ReportSubmitted
			r.Note = ""
			r.ApproverID = nil
			r.UpdatedAt = time.Now()
			continue
		}
		f.reports[f.nextID] = &models.ExamReport{
			ID:        f.nextID,
			StudentID: id,
			FileURL:   fileURL,
			Status:    models.ReportSubmitted,
			UpdatedAt: time.Now(),
		}
		f.nextID++
	}
	return nil
}

func (f *fakeExamStore) BroadcastReportStatus(ctx context.Context, tx pgx.Tx, studentIDs []int64, status models.ReportStatus, note string, approverID int64) error {
	for _, id := range studentIDs {
		for _, r := range f.reports {
			if r.StudentID == id {
				aid := approverID
				r.Status = status
				r.Note = note
				r.ApproverID = &aid
				r.UpdatedAt = time.Now()
			}
		}
	}
	return nil
}

func (f *fakeExamStore) CreateSchedule(ctx context.Context, schedule *models.ExamSchedule) (int64, error) {
	s := *schedule
	s.ID = f.nextID
	f.nextID++
	f.schedules[s.ID] = &s
	return s.ID, nil
}

func (f *fakeExamStore) DeleteAllReports(ctx context.Context, tx pgx.Tx) error {
	f.reports = make(map[int64]*models.ExamReport)
	return nil
}

func (f *fakeExamStore) DeleteAllSchedules(ctx context.Context, tx pgx.Tx) error {
	f.schedules = make(map[int64]*models.ExamSchedule)
	return nil
}

type fakePeriodStore struct {
	periods map[int64]*models.Period
	nextID  int64
}

func newFakePeriodStore() *fakePeriodStore {
	return &fakePeriodStore{periods: make(map[int64]*models.Period), nextID: 1}
}

func (f *fakePeriodStore) Create(ctx context.Context, period *models.Period) (int64, error) {
	for _, p := range f.periods {
		if p.Semester == period.Semester && p.Status == models.PeriodActive {
			return 0, apperrors.NewConflictError("an active period for semester %d was created concurrently", period.Semester)
		}
	}
	p := *period
	p.ID = f.nextID
	f.nextID++
	f.periods[p.ID] = &p
	return p.ID, nil
}

func (f *fakePeriodStore) GetByID(ctx context.Context, id int64) (*models.Period, error) {
	p, ok := f.periods[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("period %d not found", id)
	}
	out := *p
	return &out, nil
}

func (f *fakePeriodStore) HasActiveForSemester(ctx context.Context, semester int) (bool, error) {
	for _, p := range f.periods {
		if p.Semester == semester && p.Status == models.PeriodActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePeriodStore) MarkCompleted(ctx context.Context, tx pgx.Tx, id int64) error {
	p, ok := f.periods[id]
	if !ok {
		return apperrors.NewNotFoundError("period %d not found", id)
	}
	if p.Status != models.PeriodActive {
		return apperrors.NewPreconditionError("period %d is not active", id)
	}
	p.Status = models.PeriodCompleted
	return nil
}

type fakeRoleStore struct {
	assignments []*models.RoleAssignment
	nextID      int64
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{nextID: 1}
}

func (f *fakeRoleStore) Upsert(ctx context.Context, assignment *models.RoleAssignment) error {
	for _, a := range f.assignments {
		if a.InstructorID == assignment.InstructorID && a.Role == assignment.Role {
			a.AssignedSemester = assignment.AssignedSemester
			return nil
		}
	}
	a := *assignment
	a.ID = f.nextID
	f.nextID++
	f.assignments = append(f.assignments, &a)
	return nil
}

func (f *fakeRoleStore) FindCoordinatorForSemester(ctx context.Context, semester int) (*models.RoleAssignment, error) {
	for _, a := range f.assignments {
		if a.Role == models.AdminKoordinator && a.AssignedSemester != nil && *a.AssignedSemester == semester {
			out := *a
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no coordinator assigned for semester %d", semester)
}

func (f *fakeRoleStore) HasRole(ctx context.Context, instructorID int64, role models.AdminRole) (bool, error) {
	for _, a := range f.assignments {
		if a.InstructorID == instructorID && a.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoleStore) ListByInstructor(ctx context.Context, instructorID int64) ([]models.RoleAssignment, error) {
	var out []models.RoleAssignment
	for _, a := range f.assignments {
		if a.InstructorID == instructorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) add(u models.User) *models.User {
	if u.ID == 0 {
		u.ID = f.nextID
	}
	if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	f.users[u.ID] = &u
	return f.users[u.ID]
}

func (f *fakeUserStore) addInstructor(id int64, name string) *models.User {
	return f.add(models.User{ID: id, Email: name + "@kampus.ac.id", FullName: name, RoleType: models.RoleDosen, IsActive: true})
}

func (f *fakeUserStore) Create(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	u := *user
	u.IsActive = true
	created := f.add(u)
	return created.ID, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	out := *u
	return &out, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (f *fakeUserStore) GetInstructor(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok || u.RoleType != models.RoleDosen || !u.IsActive {
		return nil, apperrors.NewNotFoundError("instructor %d not found", id)
	}
	out := *u
	return &out, nil
}

type fakeStatsStore struct {
	stats *dto.CohortStatsResponse
	err   error
}

func (f *fakeStatsStore) CohortCounts(ctx context.Context) (*dto.CohortStatsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

type fakeStatsCache struct {
	stats    *dto.CohortStatsResponse
	getErr   error
	setErr   error
	setCalls int
}

func (f *fakeStatsCache) Get(ctx context.Context) (*dto.CohortStatsResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stats == nil {
		return nil, apperrors.NewNotFoundError("cohort stats not cached")
	}
	return f.stats, nil
}

func (f *fakeStatsCache) Set(ctx context.Context, stats *dto.CohortStatsResponse) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.stats = stats
	return nil
}
