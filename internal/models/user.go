package models

// User is the storage representation of a user row. Only the department
// membership columns are written by this service.
type User struct {
	UserID               string  `db:"user_id"`
	CompanyID            string  `db:"company_id"`
	Name                 string  `db:"name"`
	Role                 string  `db:"role"`
	DepartmentID         *string `db:"department_id"`
	PreviousDepartmentID *string `db:"previous_department_id"`
	IsDepartmentHead     bool    `db:"is_department_head"`
	IsActive             bool    `db:"is_active"`

	AuditFields
}
