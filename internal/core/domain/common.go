package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Actor is the acting-user context supplied by the auth layer on every call.
// It is always passed explicitly; services never read identity from ambient state.
type Actor struct {
	UserID      string   `json:"userID"`
	DisplayName string   `json:"displayName"`
	Role        UserRole `json:"role"`
	CompanyID   string   `json:"companyID"`
}

// IsComplete reports whether the actor carries the identity fields every
// mutating operation requires.
func (a Actor) IsComplete() bool {
	return a.UserID != "" && a.CompanyID != ""
}

// IsElevated reports whether the actor holds one of the administrative roles.
func (a Actor) IsElevated() bool {
	return a.Role == RoleHR || a.Role == RoleAdmin
}
