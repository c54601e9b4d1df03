package dto

import (
	"time"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
)

// --- Department DTOs ---

// CreateDepartmentRequest defines data for creating a new department.
type CreateDepartmentRequest struct {
	Name               string  `json:"name" binding:"required,max=100"`
	Description        string  `json:"description"`
	Icon               string  `json:"icon"`
	Color              string  `json:"color" binding:"omitempty,hexcolor"`
	ParentDepartmentID *string `json:"parentDepartmentID,omitempty"`
}

// UpdateDepartmentRequest defines a partial department update. Nil fields are untouched.
type UpdateDepartmentRequest struct {
	Name               *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description        *string `json:"description,omitempty"`
	Icon               *string `json:"icon,omitempty"`
	Color              *string `json:"color,omitempty" binding:"omitempty,hexcolor"`
	ParentDepartmentID *string `json:"parentDepartmentID,omitempty"`
}

// AssignHeadRequest names the user to promote to department head.
type AssignHeadRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// AssignUserRequest defines a single-user department assignment.
type AssignUserRequest struct {
	DepartmentID string `json:"departmentID" binding:"required"`
}

// BulkAssignUsersRequest defines a best-effort bulk assignment.
type BulkAssignUsersRequest struct {
	UserIDs      []string `json:"userIDs" binding:"required,min=1"`
	DepartmentID string   `json:"departmentID" binding:"required"`
}

// DeleteDepartmentRequest optionally names the department to move members to.
type DeleteDepartmentRequest struct {
	ReassignToID *string `json:"reassignToID,omitempty"`
}

// DepartmentResponse defines data returned for a department.
type DepartmentResponse struct {
	DepartmentID       string     `json:"departmentID"`
	CompanyID          string     `json:"companyID"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Icon               string     `json:"icon"`
	Color              string     `json:"color"`
	ParentDepartmentID *string    `json:"parentDepartmentID,omitempty"`
	HeadUserID         *string    `json:"headUserID,omitempty"`
	HeadUserName       *string    `json:"headUserName,omitempty"`
	IsActive           bool       `json:"isActive"`
	MemberCount        int        `json:"memberCount"`
	DeletedAt          *time.Time `json:"deletedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	LastUpdatedAt      time.Time  `json:"lastUpdatedAt"`
}

// ToDepartmentResponse converts domain.Department to DTO.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID:       d.DepartmentID,
		CompanyID:          d.CompanyID,
		Name:               d.Name,
		Description:        d.Description,
		Icon:               d.Icon,
		Color:              d.Color,
		ParentDepartmentID: d.ParentDepartmentID,
		HeadUserID:         d.HeadUserID,
		HeadUserName:       d.HeadUserName,
		IsActive:           d.IsActive,
		MemberCount:        d.MemberCount,
		DeletedAt:          d.DeletedAt,
		CreatedAt:          d.CreatedAt,
		LastUpdatedAt:      d.LastUpdatedAt,
	}
}

// ListDepartmentsResponse wraps a department listing.
type ListDepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

// ToListDepartmentsResponse converts a slice of domain.Department to DTO.
func ToListDepartmentsResponse(ds []domain.Department) ListDepartmentsResponse {
	list := make([]DepartmentResponse, len(ds))
	for i, d := range ds {
		list[i] = ToDepartmentResponse(&d)
	}
	return ListDepartmentsResponse{Departments: list}
}

// DepartmentStatisticsResponse returns live aggregates for a department.
type DepartmentStatisticsResponse struct {
	DepartmentID  string `json:"departmentID"`
	MemberCount   int    `json:"memberCount"`
	PostCount     int    `json:"postCount"`
	ResolvedPosts int    `json:"resolvedPosts"`
	PendingPosts  int    `json:"pendingPosts"`
}

// ToDepartmentStatisticsResponse converts domain statistics to DTO.
func ToDepartmentStatisticsResponse(s *domain.DepartmentStatistics) DepartmentStatisticsResponse {
	return DepartmentStatisticsResponse(*s)
}

// DepartmentMemberResponse defines data returned for one department member.
type DepartmentMemberResponse struct {
	UserID           string          `json:"userID"`
	Name             string          `json:"name"`
	Role             domain.UserRole `json:"role"`
	IsDepartmentHead bool            `json:"isDepartmentHead"`
}

// ToDepartmentMemberResponses converts domain users to member DTOs.
func ToDepartmentMemberResponses(users []domain.User) []DepartmentMemberResponse {
	out := make([]DepartmentMemberResponse, len(users))
	for i, u := range users {
		out[i] = DepartmentMemberResponse{
			UserID:           u.UserID,
			Name:             u.Name,
			Role:             u.Role,
			IsDepartmentHead: u.IsDepartmentHead,
		}
	}
	return out
}

// AssignmentLogResponse defines data returned for one assignment audit entry.
type AssignmentLogResponse struct {
	LogID           string    `json:"logID"`
	UserID          string    `json:"userID"`
	UserName        string    `json:"userName"`
	OldDepartmentID *string   `json:"oldDepartmentID,omitempty"`
	NewDepartmentID *string   `json:"newDepartmentID,omitempty"`
	ChangedBy       string    `json:"changedBy"`
	ChangedAt       time.Time `json:"changedAt"`
}

// ToAssignmentLogResponses converts a slice of domain logs to DTOs.
func ToAssignmentLogResponses(logs []domain.DepartmentAssignmentLog) []AssignmentLogResponse {
	out := make([]AssignmentLogResponse, len(logs))
	for i, l := range logs {
		out[i] = AssignmentLogResponse{
			LogID:           l.LogID,
			UserID:          l.UserID,
			UserName:        l.UserName,
			OldDepartmentID: l.OldDepartmentID,
			NewDepartmentID: l.NewDepartmentID,
			ChangedBy:       l.ChangedBy,
			ChangedAt:       l.ChangedAt,
		}
	}
	return out
}
