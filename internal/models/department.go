package models

import "time"

// Department is the storage representation of a department row. There is no
// member_count column: counts are derived from users at read time.
type Department struct {
	DepartmentID       string  `db:"department_id"`
	CompanyID          string  `db:"company_id"`
	Name               string  `db:"name"`
	Description        string  `db:"description"`
	Icon               string  `db:"icon"`
	Color              string  `db:"color"`
	ParentDepartmentID *string `db:"parent_department_id"`
	HeadUserID         *string `db:"head_user_id"`
	HeadUserName       *string `db:"head_user_name"`
	IsActive           bool    `db:"is_active"`

	DeletedAt *time.Time `db:"deleted_at"`
	AuditFields
}

// DepartmentAssignmentLog is the storage representation of one assignment audit row.
type DepartmentAssignmentLog struct {
	LogID           string    `db:"log_id"`
	UserID          string    `db:"user_id"`
	UserName        string    `db:"user_name"`
	OldDepartmentID *string   `db:"old_department_id"`
	NewDepartmentID *string   `db:"new_department_id"`
	ChangedBy       string    `db:"changed_by"`
	ChangedAt       time.Time `db:"changed_at"`
}
