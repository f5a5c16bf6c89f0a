package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/workledger/internal/config"
	appHTTP "github.com/cmlabs-hris/workledger/internal/handler/http"
	"github.com/cmlabs-hris/workledger/internal/pkg/cron"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/jwt"
	"github.com/cmlabs-hris/workledger/internal/pkg/logging"
	"github.com/cmlabs-hris/workledger/internal/repository/postgresql"
	adminService "github.com/cmlabs-hris/workledger/internal/service/admin"
	advanceService "github.com/cmlabs-hris/workledger/internal/service/advance"
	attendanceService "github.com/cmlabs-hris/workledger/internal/service/attendance"
	auditService "github.com/cmlabs-hris/workledger/internal/service/audit"
	serviceAuth "github.com/cmlabs-hris/workledger/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/workledger/internal/service/company"
	employeeService "github.com/cmlabs-hris/workledger/internal/service/employee"
	payrollService "github.com/cmlabs-hris/workledger/internal/service/payroll"
	purgeService "github.com/cmlabs-hris/workledger/internal/service/purge"
	teamService "github.com/cmlabs-hris/workledger/internal/service/team"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	tx := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	purgeRepo := postgresql.NewPurgeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	auditSvc := auditService.NewAuditService(auditRepo)
	purgeSvc := purgeService.NewPurgeService(tx, purgeRepo, employeeRepo, userRepo)
	authSvc := serviceAuth.NewAuthService(tx, userRepo, companyRepo, JWTService, refreshTokenRepo)
	companySvc := serviceCompany.NewCompanyService(companyRepo, purgeSvc)
	adminSvc := adminService.NewAdminService(tx, userRepo, purgeSvc, auditSvc)
	teamSvc := teamService.NewTeamService(tx, teamRepo, userRepo, auditSvc)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, teamRepo, purgeSvc, auditSvc)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo, teamRepo, auditSvc, cfg.App.Location)
	advanceSvc := advanceService.NewAdvanceService(tx, advanceRepo, employeeRepo, auditSvc, cfg.App.Location)
	payrollSvc := payrollService.NewPayrollService(tx, payrollRepo, employeeRepo, teamRepo, auditSvc)

	router := appHTTP.NewRouter(logger, cfg.CORS.AllowedOrigins, JWTService, userRepo, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Company:    appHTTP.NewCompanyHandler(companySvc),
		Admin:      appHTTP.NewAdminHandler(adminSvc),
		Team:       appHTTP.NewTeamHandler(teamSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Advance:    appHTTP.NewAdvanceHandler(advanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc, cfg.App.Location),
		Audit:      appHTTP.NewAuditHandler(auditSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(refreshTokenRepo).RegisterJobs(scheduler, cfg.JWT.SweepInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
