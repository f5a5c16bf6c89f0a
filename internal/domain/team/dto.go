package team

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
)

type CreateTeamRequest struct {
	Name      string `json:"name"`
	ManagerID string `json:"manager_id"`
}

func (r *CreateTeamRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must be at most 100 characters"})
	}
	if validator.IsEmpty(r.ManagerID) {
		errs = append(errs, validator.ValidationError{Field: "manager_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ManagerID   string    `json:"manager_id"`
	ManagerName *string   `json:"manager_name,omitempty"`
	MemberIDs   []string  `json:"member_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTeamResponse(t Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		ManagerID:   t.ManagerID,
		ManagerName: t.ManagerName,
		MemberIDs:   t.MemberIDs,
		CreatedAt:   t.CreatedAt,
	}
}
