package audit

import "time"

const (
	DefaultListLimit = 200
	MaxListLimit     = 1000
)

type EntryResponse struct {
	ID           string    `json:"id"`
	OperatorID   string    `json:"operator_id"`
	OperatorName *string   `json:"operator_name,omitempty"`
	Action       string    `json:"action"`
	Detail       string    `json:"detail"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		OperatorID:   e.OperatorID,
		OperatorName: e.OperatorName,
		Action:       string(e.Action),
		Detail:       e.Detail,
		CreatedAt:    e.CreatedAt,
	}
}
