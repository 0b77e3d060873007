// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	auditDomain "github.com/briefnote/briefnote/internal/audit/domain"
)

// AuditLogResponse represents an audit trail entry in API responses.
type AuditLogResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ActorName       string    `json:"actor_name"`
	Action          string    `json:"action"`
	CredentialLabel string    `json:"credential_label,omitempty"`
	CredentialID    *int64    `json:"credential_id,omitempty"`
	Details         string    `json:"details,omitempty"`
	IPAddress       string    `json:"ip_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Pagination describes the position of a page inside the full result set.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// ListAuditLogsResponse represents a paginated audit trail page.
type ListAuditLogsResponse struct {
	Data       []AuditLogResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// MapAuditLogsToListResponse converts domain entries to a paginated list response.
func MapAuditLogsToListResponse(
	entries []*auditDomain.AuditLog,
	page, perPage int,
	total int64,
) ListAuditLogsResponse {
	data := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, AuditLogResponse{
			ID:              entry.ID,
			UserID:          entry.UserID,
			ActorName:       entry.ActorName,
			Action:          string(entry.Action),
			CredentialLabel: entry.CredentialLabel,
			CredentialID:    entry.CredentialID,
			Details:         entry.Details,
			IPAddress:       entry.IPAddress,
			CreatedAt:       entry.CreatedAt,
		})
	}

	return ListAuditLogsResponse{
		Data: data,
		Pagination: Pagination{
			Page:    page,
			PerPage: perPage,
			Total:   total,
		},
	}
}
