package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"assignhub/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) ListStudentsByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok && u.Role == model.RoleStudent {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	users   *mockUserRepo
}

func newMockCourseRepo(users *mockUserRepo) *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course), users: users}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = "course-" + course.Name
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		if c.Professor == nil {
			if p, ok := m.users.users[c.ProfessorID]; ok {
				c.Professor = p
			}
		}
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByJoinCode(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.JoinCode == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) JoinCodeExists(_ context.Context, code string) (bool, error) {
	for _, c := range m.courses {
		if c.JoinCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) ListByProfessor(_ context.Context, professorID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.ProfessorID == professorID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByStudent(_ context.Context, studentID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		for i := range c.Students {
			if c.Students[i].UserID == studentID {
				result = append(result, *c)
				break
			}
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) AddStudent(_ context.Context, courseID, studentID string) error {
	c, ok := m.courses[courseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range c.Students {
		if c.Students[i].UserID == studentID {
			return nil
		}
	}
	student := model.User{UserID: studentID}
	if u, ok := m.users.users[studentID]; ok {
		student = *u
	}
	c.Students = append(c.Students, student)
	return nil
}

func (m *mockCourseRepo) ReplaceStudents(_ context.Context, course *model.Course, students []model.User) error {
	course.Students = students
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) IsStudentEnrolled(_ context.Context, courseID, studentID string) (bool, error) {
	c, ok := m.courses[courseID]
	if !ok {
		return false, nil
	}
	for i := range c.Students {
		if c.Students[i].UserID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	courses     *mockCourseRepo
	seq         int
}

func newMockAssignmentRepo(courses *mockCourseRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment), courses: courses}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("asg-%03d", m.seq)
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if a.Course == nil {
		a.Course = m.courses.courses[a.CourseID]
	}
	return a, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepo) ListByProfessor(_ context.Context, professorID, courseID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		course := m.courses.courses[a.CourseID]
		if course == nil || course.ProfessorID != professorID {
			continue
		}
		if courseID != "" && a.CourseID != courseID {
			continue
		}
		a.Course = course
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByStudent(_ context.Context, studentID, courseID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		enrolled, _ := m.courses.IsStudentEnrolled(context.Background(), a.CourseID, studentID)
		if !enrolled {
			continue
		}
		if courseID != "" && a.CourseID != courseID {
			continue
		}
		a.Course = m.courses.courses[a.CourseID]
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListDueBetween(_ context.Context, from, to time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if !a.DueDate.After(from) || a.DueDate.After(to) {
			continue
		}
		a.Course = m.courses.courses[a.CourseID]
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.assignments)), nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions map[string]*model.Submission
	assignments *mockAssignmentRepo
	users       *mockUserRepo
	seq         int
}

func newMockSubmissionRepo(assignments *mockAssignmentRepo, users *mockUserRepo) *mockSubmissionRepo {
	return &mockSubmissionRepo{
		submissions: make(map[string]*model.Submission),
		assignments: assignments,
		users:       users,
	}
}

func (m *mockSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	if submission.SubmissionID == "" {
		m.seq++
		submission.SubmissionID = fmt.Sprintf("sub-%03d", m.seq)
	}
	m.submissions[submission.SubmissionID] = submission
	return nil
}

func (m *mockSubmissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	s, ok := m.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if s.Assignment == nil {
		s.Assignment, _ = m.assignments.GetByID(ctx, s.AssignmentID)
	}
	if s.Student == nil {
		s.Student = m.users.users[s.StudentID]
	}
	return s, nil
}

func (m *mockSubmissionRepo) ExistsByPair(_ context.Context, assignmentID, studentID string) (bool, error) {
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	m.submissions[submission.SubmissionID] = submission
	return nil
}

func (m *mockSubmissionRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error) {
	var result []model.Submission
	for id, s := range m.submissions {
		if s.AssignmentID != assignmentID {
			continue
		}
		loaded, _ := m.GetByID(ctx, id)
		result = append(result, *loaded)
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	var result []model.Submission
	for id, s := range m.submissions {
		if s.StudentID != studentID {
			continue
		}
		loaded, _ := m.GetByID(ctx, id)
		result = append(result, *loaded)
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListStudentIDsByAssignment(_ context.Context, assignmentID string) ([]string, error) {
	var ids []string
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID {
			ids = append(ids, s.StudentID)
		}
	}
	return ids, nil
}

func (m *mockSubmissionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.submissions)), nil
}

// ── Mock NoticeRepository ──

type mockNoticeRepo struct {
	notices map[string]*model.Notice
	users   *mockUserRepo
	seq     int
}

func newMockNoticeRepo(users *mockUserRepo) *mockNoticeRepo {
	return &mockNoticeRepo{notices: make(map[string]*model.Notice), users: users}
}

func (m *mockNoticeRepo) Create(_ context.Context, notice *model.Notice) error {
	if notice.NoticeID == "" {
		m.seq++
		notice.NoticeID = fmt.Sprintf("ntc-%03d", m.seq)
	}
	m.notices[notice.NoticeID] = notice
	return nil
}

func (m *mockNoticeRepo) GetByID(_ context.Context, id string) (*model.Notice, error) {
	n, ok := m.notices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if n.Author == nil {
		n.Author = m.users.users[n.AuthorID]
	}
	return n, nil
}

func (m *mockNoticeRepo) List(_ context.Context) ([]model.Notice, error) {
	var result []model.Notice
	for _, n := range m.notices {
		if n.Author == nil {
			n.Author = m.users.users[n.AuthorID]
		}
		result = append(result, *n)
	}
	return result, nil
}

func (m *mockNoticeRepo) Update(_ context.Context, notice *model.Notice) error {
	m.notices[notice.NoticeID] = notice
	return nil
}

func (m *mockNoticeRepo) Delete(_ context.Context, id string) error {
	delete(m.notices, id)
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	dedupeSeen    map[string]bool
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{
		notifications: make(map[string]*model.Notification),
		dedupeSeen:    make(map[string]bool),
	}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	if notification.NotificationID == "" {
		m.seq++
		notification.NotificationID = fmt.Sprintf("ntf-%03d", m.seq)
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	m.notifications[notification.NotificationID] = notification
	return nil
}

func (m *mockNotificationRepo) CreateIfAbsent(ctx context.Context, notification *model.Notification) (bool, error) {
	if notification.DedupeKey != nil {
		if m.dedupeSeen[*notification.DedupeKey] {
			return false, nil
		}
		m.dedupeSeen[*notification.DedupeKey] = true
	}
	return true, m.Create(ctx, notification)
}

func (m *mockNotificationRepo) ListByRecipient(_ context.Context, recipientID string) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) GetByIDAndRecipient(_ context.Context, id, recipientID string) (*model.Notification, error) {
	n, ok := m.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ActivityLogRepository ──

type mockActivityLogRepo struct {
	logs []*model.ActivityLog
	seq  int
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Create(_ context.Context, log *model.ActivityLog) error {
	if log.LogID == "" {
		m.seq++
		log.LogID = fmt.Sprintf("log-%03d", m.seq)
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockActivityLogRepo) List(_ context.Context, offset, limit int) ([]model.ActivityLog, int64, error) {
	total := int64(len(m.logs))
	var result []model.ActivityLog
	for i := len(m.logs) - 1; i >= 0; i-- {
		result = append(result, *m.logs[i])
	}
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// ── Mock storage.Store ──

type mockStore struct {
	saved int
}

func (m *mockStore) Save(r io.Reader, filename string, _ time.Time) (string, string, error) {
	io.Copy(io.Discard, r)
	m.saved++
	return "submissions/test/" + filename, "/media/submissions/test/" + filename, nil
}
