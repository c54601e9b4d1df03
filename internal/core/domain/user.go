package domain

// UserRole defines the platform-wide role of a user within their company.
type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"
	RoleHR       UserRole = "hr"
	RoleAdmin    UserRole = "admin"
)

// User represents a company employee. This core only mutates the department
// membership fields; everything else belongs to the external user service.
type User struct {
	UserID               string   `json:"userID"` // Primary Key (e.g., UUID)
	CompanyID            string   `json:"companyID"`
	Name                 string   `json:"name"`
	Role                 UserRole `json:"role"`
	DepartmentID         *string  `json:"departmentID,omitempty"`
	PreviousDepartmentID *string  `json:"previousDepartmentID,omitempty"`
	IsDepartmentHead     bool     `json:"isDepartmentHead"`
	IsActive             bool     `json:"isActive"`
	AuditFields
}
