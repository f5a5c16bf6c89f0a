package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/workledger/internal/domain/company"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
)

type companyRepository struct{ s *Store }

func (s *Store) CompanyRepository() company.CompanyRepository { return companyRepository{s} }

func (r companyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("Company.Create"); err != nil {
		return company.Company{}, err
	}
	for _, existing := range s.companies {
		if existing.Name == c.Name {
			return company.Company{}, company.ErrCompanyNameExists
		}
	}
	c.ID = newID()
	s.companies[c.ID] = c
	s.onRollback(ctx, func() { delete(s.companies, c.ID) })
	return c, nil
}

func (r companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r companyRepository) GetByName(ctx context.Context, name string) (company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (r companyRepository) Delete(ctx context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return company.ErrCompanyNotFound
	}
	delete(s.companies, id)
	s.onRollback(ctx, func() { s.companies[id] = c })
	return nil
}

type userRepository struct{ s *Store }

func (s *Store) UserRepository() user.UserRepository { return userRepository{s} }

func (r userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("User.Create"); err != nil {
		return user.User{}, err
	}
	for _, existing := range s.users {
		if existing.CompanyID == u.CompanyID && existing.Username == u.Username {
			return user.User{}, user.ErrUsernameExists
		}
	}
	u.ID = newID()
	s.users[u.ID] = u
	s.onRollback(ctx, func() { delete(s.users, u.ID) })
	return u, nil
}

func (r userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r userRepository) GetByUsername(ctx context.Context, companyID string, username string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.CompanyID == companyID && u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r userRepository) ListAdmins(ctx context.Context, companyID string) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []user.User
	for _, u := range r.s.users {
		if u.CompanyID == companyID && u.IsAdmin {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
