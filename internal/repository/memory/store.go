// Package memory is an in-memory implementation of the repository interfaces and
// of database.Transactor. Service tests run against it; writes made inside a
// failed transaction are rolled back through an undo log.
package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/workledger/internal/domain/advance"
	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/company"
	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	companies   map[string]company.Company
	users       map[string]user.User
	teams       map[string]team.Team
	employees   map[string]employee.Employee
	members     map[string]map[string]bool // team ID -> employee IDs
	attendances map[string]attendance.Attendance
	notes       map[string]attendance.Note
	advances    map[string]advance.Advance
	audit       []audit.Entry
	tokens      map[string]refreshToken

	dayLocks sync.Map // "employeeID|date" -> *sync.Mutex
	failures map[string]error
}

func NewStore() *Store {
	return &Store{
		companies:   make(map[string]company.Company),
		users:       make(map[string]user.User),
		teams:       make(map[string]team.Team),
		employees:   make(map[string]employee.Employee),
		members:     make(map[string]map[string]bool),
		attendances: make(map[string]attendance.Attendance),
		notes:       make(map[string]attendance.Note),
		advances:    make(map[string]advance.Advance),
		tokens:      make(map[string]refreshToken),
		failures:    make(map[string]error),
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FailOn makes every later call of the named repository method return err.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

// fail must be called with s.mu held.
func (s *Store) fail(method string) error {
	return s.failures[method]
}

type txKey struct{}

type txState struct {
	undo    []func()
	unlocks []func()
}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	ctx, hooks := database.WithCommitHooks(ctx)
	tx := &txState{}
	err := fn(context.WithValue(ctx, txKey{}, tx))
	if err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
	}
	for i := len(tx.unlocks) - 1; i >= 0; i-- {
		tx.unlocks[i]()
	}
	if err != nil {
		return err
	}
	hooks.Run()
	return nil
}

// onRollback registers undo for the transaction in ctx. Must be called with s.mu held.
func (s *Store) onRollback(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok {
		tx.undo = append(tx.undo, undo)
	}
}

func (s *Store) lockKey(ctx context.Context, key string) {
	m, _ := s.dayLocks.LoadOrStore(key, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	if tx, ok := ctx.Value(txKey{}).(*txState); ok {
		tx.unlocks = append(tx.unlocks, mu.Unlock)
		return
	}
	// Outside a transaction the lock protects nothing beyond this call.
	mu.Unlock()
}

// Seeding helpers for tests. They bypass the undo log.

func (s *Store) AddCompany(c company.Company) company.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = newID()
	}
	s.companies[c.ID] = c
	return c
}

func (s *Store) AddUser(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = newID()
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) AddTeam(t team.Team) team.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = newID()
	}
	s.teams[t.ID] = t
	return t
}

// AddEmployee stores e and makes it a member of e.TeamIDs.
func (s *Store) AddEmployee(e employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = newID()
	}
	for _, teamID := range e.TeamIDs {
		if s.members[teamID] == nil {
			s.members[teamID] = make(map[string]bool)
		}
		s.members[teamID][e.ID] = true
	}
	e.TeamIDs = nil
	s.employees[e.ID] = e
	return e
}

func (s *Store) AddAttendance(a attendance.Attendance) attendance.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	s.attendances[a.ID] = a
	return a
}

func (s *Store) AddAdvance(a advance.Advance) advance.Advance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	s.advances[a.ID] = a
	return a
}

// Counts reports the number of stored rows per table.
type Counts struct {
	Companies, Users, Teams, Employees, Memberships int
	Attendances, Notes, Advances, AuditEntries      int
}

func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Counts{
		Companies:    len(s.companies),
		Users:        len(s.users),
		Teams:        len(s.teams),
		Employees:    len(s.employees),
		Attendances:  len(s.attendances),
		Notes:        len(s.notes),
		Advances:     len(s.advances),
		AuditEntries: len(s.audit),
	}
	for _, m := range s.members {
		c.Memberships += len(m)
	}
	return c
}

// AuditEntries returns a copy of the audit trail in insertion order.
func (s *Store) AuditEntries() []audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Entry(nil), s.audit...)
}

// Attendances returns every stored attendance record.
func (s *Store) Attendances() []attendance.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]attendance.Attendance, 0, len(s.attendances))
	for _, a := range s.attendances {
		out = append(out, a)
	}
	return out
}

// Teams returns every stored team.
func (s *Store) Teams() []team.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]team.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	return out
}
