package handler

import (
	"net/http"
	"time"

	"rdapd/internal/policy"
	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/audit"
)

var errorDescriptions = map[int]string{
	http.StatusBadRequest:          "The domain name in the request is malformed.",
	http.StatusNotFound:            "The server has not found anything matching the request.",
	http.StatusTooManyRequests:     "Too many queries from this address. Please try again later.",
	http.StatusInternalServerError: "The server encountered an error while answering the request.",
}

// NewErrorMessage builds the RDAP error body for status.
func NewErrorMessage(status int) *models.ErrorMessage {
	msg := &models.ErrorMessage{
		ErrorCode: status,
		Title:     http.StatusText(status),
		Lang:      "en",
	}
	if desc, ok := errorDescriptions[status]; ok {
		msg.Description = []string{desc}
	}
	return msg
}

// PolicyResponse renders the policy in force on the admin endpoints.
type PolicyResponse struct {
	Loaded   bool                `json:"loaded"`
	LoadedAt *time.Time          `json:"loadedAt,omitempty"`
	Policy   map[string][]string `json:"policy"`
}

// FromSnapshot converts a snapshot, which may be nil, to its response form.
func FromSnapshot(s *policy.Snapshot) PolicyResponse {
	if s == nil {
		return PolicyResponse{Policy: map[string][]string{}}
	}
	loadedAt := s.LoadedAt()
	return PolicyResponse{
		Loaded:   true,
		LoadedAt: &loadedAt,
		Policy:   s.Map(),
	}
}

// AuditResponse lists policy administration events, newest first.
type AuditResponse struct {
	Events []audit.Event `json:"events"`
}
