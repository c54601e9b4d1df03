package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	portsrepo "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/repositories"
)

// --- Mock PostRepository ---

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) FindPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, companyID string, filter portsrepo.PostListFilter, limit int, nextToken *string) ([]domain.Post, *string, error) {
	args := m.Called(ctx, companyID, filter, limit, nextToken)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return posts, token, args.Error(2)
}

func (m *MockPostRepository) CountPostsByDepartment(ctx context.Context, departmentID string) (portsrepo.PostDepartmentCounts, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).(portsrepo.PostDepartmentCounts), args.Error(1)
}

func (m *MockPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) SaveEditHistoryEntry(ctx context.Context, entry domain.EditHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPostRepository) ListEditHistory(ctx context.Context, postID string) ([]domain.EditHistoryEntry, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EditHistoryEntry), args.Error(1)
}

// --- Mock DepartmentRepository ---

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ListDepartments(ctx context.Context, companyID string, includeInactive bool) ([]domain.Department, error) {
	args := m.Called(ctx, companyID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindActiveDepartmentByName(ctx context.Context, companyID string, name string) (*domain.Department, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) SoftDeleteDepartment(ctx context.Context, departmentID string, reassignToID *string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, departmentID, reassignToID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockDepartmentRepository) SaveAssignmentLog(ctx context.Context, entry domain.DepartmentAssignmentLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDepartmentRepository) ListAssignmentLogsByUser(ctx context.Context, userID string) ([]domain.DepartmentAssignmentLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentAssignmentLog), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListActiveUsersByDepartment(ctx context.Context, departmentID string) ([]domain.User, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) CountActiveUsersByDepartment(ctx context.Context, departmentID string) (int, error) {
	args := m.Called(ctx, departmentID)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) UpdateUserDepartment(ctx context.Context, userID string, departmentID *string, previousDepartmentID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, departmentID, previousDepartmentID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) SetDepartmentHead(ctx context.Context, userID string, isHead bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, isHead, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock ActivityLogRepository ---

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) ListActivitiesByEntity(ctx context.Context, entityID string, limit int) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, entityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}
