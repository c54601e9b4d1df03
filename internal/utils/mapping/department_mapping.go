package mapping

import (
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/models"
)

// ToModelDepartment converts a domain Department to a model Department.
// MemberCount is derived and intentionally has no storage column.
func ToModelDepartment(d domain.Department) models.Department {
	return models.Department{
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
		DeletedAt:          d.DeletedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDepartment converts a model Department to a domain Department.
func ToDomainDepartment(m models.Department) domain.Department {
	return domain.Department{
		DepartmentID:       m.DepartmentID,
		CompanyID:          m.CompanyID,
		Name:               m.Name,
		Description:        m.Description,
		Icon:               m.Icon,
		Color:              m.Color,
		ParentDepartmentID: m.ParentDepartmentID,
		HeadUserID:         m.HeadUserID,
		HeadUserName:       m.HeadUserName,
		IsActive:           m.IsActive,
		DeletedAt:          m.DeletedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAssignmentLog converts a domain assignment log to a model log.
func ToModelAssignmentLog(d domain.DepartmentAssignmentLog) models.DepartmentAssignmentLog {
	return models.DepartmentAssignmentLog{
		LogID:           d.LogID,
		UserID:          d.UserID,
		UserName:        d.UserName,
		OldDepartmentID: d.OldDepartmentID,
		NewDepartmentID: d.NewDepartmentID,
		ChangedBy:       d.ChangedBy,
		ChangedAt:       d.ChangedAt,
	}
}

// ToDomainAssignmentLog converts a model assignment log to a domain log.
func ToDomainAssignmentLog(m models.DepartmentAssignmentLog) domain.DepartmentAssignmentLog {
	return domain.DepartmentAssignmentLog{
		LogID:           m.LogID,
		UserID:          m.UserID,
		UserName:        m.UserName,
		OldDepartmentID: m.OldDepartmentID,
		NewDepartmentID: m.NewDepartmentID,
		ChangedBy:       m.ChangedBy,
		ChangedAt:       m.ChangedAt,
	}
}
