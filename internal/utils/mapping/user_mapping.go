package mapping

import (
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/models"
)

// ToDomainUser converts a model User to a domain User.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:               m.UserID,
		CompanyID:            m.CompanyID,
		Name:                 m.Name,
		Role:                 domain.UserRole(m.Role),
		DepartmentID:         m.DepartmentID,
		PreviousDepartmentID: m.PreviousDepartmentID,
		IsDepartmentHead:     m.IsDepartmentHead,
		IsActive:             m.IsActive,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
