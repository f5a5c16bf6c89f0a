package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/purge"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	authService "github.com/cmlabs-hris/workledger/internal/service/auth"
)

type AdminServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	purgeService purge.PurgeService
	auditService audit.AuditService
}

func NewAdminService(tx database.Transactor, userRepository user.UserRepository, purgeService purge.PurgeService, auditService audit.AuditService) user.AdminService {
	return &AdminServiceImpl{
		tx:             tx,
		UserRepository: userRepository,
		purgeService:   purgeService,
		auditService:   auditService,
	}
}

// CreateAdmin implements user.AdminService.
func (s *AdminServiceImpl) CreateAdmin(ctx context.Context, req user.CreateAdminRequest) (user.UserResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := caller.RequireOwner(); err != nil {
		return user.UserResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hashedPassword, err := authService.HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.UserRepository.Create(ctx, user.User{
			CompanyID:    caller.CompanyID,
			Username:     req.Username,
			PasswordHash: hashedPassword,
			IsAdmin:      true,
		})
		if err != nil {
			return err
		}
		return s.auditService.Record(ctx, audit.ActionCreateAdmin, fmt.Sprintf("username=%s", created.Username))
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.NewUserResponse(created), nil
}

// ListAdmins implements user.AdminService.
func (s *AdminServiceImpl) ListAdmins(ctx context.Context) ([]user.UserResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireOwner(); err != nil {
		return nil, err
	}

	admins, err := s.UserRepository.ListAdmins(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(admins))
	for _, u := range admins {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// DeleteAdmin implements user.AdminService.
func (s *AdminServiceImpl) DeleteAdmin(ctx context.Context, id string) error {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := caller.RequireOwner(); err != nil {
		return err
	}

	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := caller.Authorize(target.CompanyID); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		result, err := s.purgeService.PurgePrincipal(ctx, target.ID)
		if err != nil {
			return err
		}
		// The trail went with the company.
		if result.TenantPurged {
			slog.Warn("Admin deletion removed the company", "company_id", caller.CompanyID, "user_id", caller.UserID)
			return nil
		}
		return s.auditService.Record(ctx, audit.ActionDeleteAdmin, fmt.Sprintf("username=%s employees=%d teams_reassigned=%d",
			target.Username, result.Employees, result.TeamsReassigned))
	})
}
