package dto

import "github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"

// --- Bulk action DTOs ---

// BulkStatusRequest changes the status of many published posts, best-effort.
type BulkStatusRequest struct {
	PostIDs []string          `json:"postIDs" binding:"required,min=1"`
	Status  domain.PostStatus `json:"status" binding:"required,oneof=open resolved closed"`
}

// BulkArchiveRequest archives or unarchives many posts, best-effort.
type BulkArchiveRequest struct {
	PostIDs  []string `json:"postIDs" binding:"required,min=1"`
	Archived bool     `json:"archived"`
}

// BulkAssignDepartmentRequest moves many posts to a department, best-effort.
type BulkAssignDepartmentRequest struct {
	PostIDs      []string `json:"postIDs" binding:"required,min=1"`
	DepartmentID string   `json:"departmentID" binding:"required"`
}

// BulkDeleteDraftsRequest hard-deletes many of the caller's drafts, best-effort.
type BulkDeleteDraftsRequest struct {
	PostIDs []string `json:"postIDs" binding:"required,min=1"`
}

// BulkResultResponse reports a best-effort bulk outcome. Success is true when
// the operation as a whole ran; callers must inspect each item result.
type BulkResultResponse struct {
	Success bool                    `json:"success"`
	Count   int                     `json:"count"`
	Results []domain.BulkItemResult `json:"results"`
}

// ToBulkResultResponse converts a domain bulk result to DTO.
func ToBulkResultResponse(r *domain.BulkResult) BulkResultResponse {
	return BulkResultResponse{Success: true, Count: r.Count, Results: r.Results}
}
