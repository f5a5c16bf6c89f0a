package team

import "time"

type Team struct {
	ID        string
	CompanyID string
	Name      string
	ManagerID string
	CreatedAt time.Time

	// DTO
	ManagerName *string
	MemberIDs   []string
}

// Member is one row of the team_members join, resolved to the employee name.
type Member struct {
	EmployeeID   string
	EmployeeName string
}
