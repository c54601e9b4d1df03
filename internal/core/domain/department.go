package domain

import "time"

// Department groups users within a company. Departments are soft-deleted only;
// historical references stay intact.
type Department struct {
	DepartmentID       string  `json:"departmentID"` // Primary Key (e.g., UUID)
	CompanyID          string  `json:"companyID"`
	Name               string  `json:"name"` // Unique (case-insensitive) among active departments of the company
	Description        string  `json:"description"`
	Icon               string  `json:"icon"`
	Color              string  `json:"color"`
	ParentDepartmentID *string `json:"parentDepartmentID,omitempty"` // Single level of hierarchy
	HeadUserID         *string `json:"headUserID,omitempty"`
	HeadUserName       *string `json:"headUserName,omitempty"`
	IsActive           bool    `json:"isActive"`

	// MemberCount is derived by counting active users referencing this
	// department at read time. It is never a stored authoritative counter.
	MemberCount int `json:"memberCount"`

	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	AuditFields
}

// DepartmentAssignmentLog is an immutable audit record of a single-user
// department change. Bulk assignment does not emit these entries.
type DepartmentAssignmentLog struct {
	LogID           string    `json:"logID"`
	UserID          string    `json:"userID"`
	UserName        string    `json:"userName"`
	OldDepartmentID *string   `json:"oldDepartmentID,omitempty"`
	NewDepartmentID *string   `json:"newDepartmentID,omitempty"`
	ChangedBy       string    `json:"changedBy"`
	ChangedAt       time.Time `json:"changedAt"`
}

// DepartmentStatistics aggregates live counts for a department. Every value is
// computed by querying the source collections; nothing here is a stored rollup.
type DepartmentStatistics struct {
	DepartmentID  string `json:"departmentID"`
	MemberCount   int    `json:"memberCount"`
	PostCount     int    `json:"postCount"`
	ResolvedPosts int    `json:"resolvedPosts"`
	PendingPosts  int    `json:"pendingPosts"`
}
