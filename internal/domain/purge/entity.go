package purge

// Result counts the rows a purge removed, by table.
type Result struct {
	Attendances     int64 `json:"attendances"`
	AttendanceNotes int64 `json:"attendance_notes"`
	Advances        int64 `json:"advances"`
	Memberships     int64 `json:"memberships"`
	Employees       int64 `json:"employees"`
	AuditEntries    int64 `json:"audit_entries"`
	TeamsReassigned int64 `json:"teams_reassigned"`
	Teams           int64 `json:"teams"`
	Users           int64 `json:"users"`
	Sessions        int64 `json:"sessions"`
	Companies       int64 `json:"companies"`
	// TenantPurged is set when removing a principal escalated to the whole company.
	TenantPurged bool `json:"tenant_purged"`
}

// Add accumulates o into r.
func (r *Result) Add(o Result) {
	r.Attendances += o.Attendances
	r.AttendanceNotes += o.AttendanceNotes
	r.Advances += o.Advances
	r.Memberships += o.Memberships
	r.Employees += o.Employees
	r.AuditEntries += o.AuditEntries
	r.TeamsReassigned += o.TeamsReassigned
	r.Teams += o.Teams
	r.Users += o.Users
	r.Sessions += o.Sessions
	r.Companies += o.Companies
	r.TenantPurged = r.TenantPurged || o.TenantPurged
}
