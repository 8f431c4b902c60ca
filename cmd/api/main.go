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

	"github.com/cmlabs-hris/worklog-backend-go/internal/config"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/lateconsideration"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/worklog-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/worklog-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/worklog-backend-go/internal/service/employee"
	lateService "github.com/cmlabs-hris/worklog-backend-go/internal/service/lateconsideration"
	leaveService "github.com/cmlabs-hris/worklog-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/worklog-backend-go/internal/service/notification"
	overtimeService "github.com/cmlabs-hris/worklog-backend-go/internal/service/overtime"
	shiftService "github.com/cmlabs-hris/worklog-backend-go/internal/service/shift"
)

type repositories struct {
	employees  employee.EmployeeRepository
	shifts     shift.ShiftRepository
	attendance attendance.AttendanceRepository
	leaves     leave.LeaveRepository
	overtime   overtime.OvertimeRepository
	lates      lateconsideration.LateConsiderationRepository
	tx         database.Transactor
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config, clk clock.Clock) (repositories, error) {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore(memory.WithClock(clk))
		return repositories{
			employees:  memory.NewEmployeeRepository(store),
			shifts:     memory.NewShiftRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			leaves:     memory.NewLeaveRepository(store),
			overtime:   memory.NewOvertimeRepository(store),
			lates:      memory.NewLateConsiderationRepository(store),
			tx:         memory.NewTransactor(),
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		employees:  postgresql.NewEmployeeRepository(db),
		shifts:     postgresql.NewShiftRepository(db),
		attendance: postgresql.NewAttendanceRepository(db),
		leaves:     postgresql.NewLeaveRepository(db),
		overtime:   postgresql.NewOvertimeRepository(db),
		lates:      postgresql.NewLateConsiderationRepository(db),
		tx:         postgresql.NewTransactor(db),
		close:      db.Close,
	}, nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(
		slog.String("app", "worklog"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clk := clock.New(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, clk)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repos.close()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	notifier := notificationService.NewNotificationService(repos.leaves, repos.overtime, repos.lates, sse.NewHub(), notificationService.Config{})
	defer notifier.Stop()

	shiftSvc := shiftService.NewShiftService(repos.shifts, repos.tx)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.overtime, shiftSvc, clk)
	leaveSvc := leaveService.NewLeaveService(repos.leaves, repos.employees, notifier, clk)
	overtimeSvc := overtimeService.NewOvertimeService(repos.overtime, notifier, clk)
	lateSvc := lateService.NewLateConsiderationService(repos.lates, repos.attendance, notifier, clk)
	employeeSvc := employeeService.NewEmployeeService(repos.employees, repos.shifts, repos.tx)

	if cfg.Seed.DefaultShifts {
		if _, err := fixtures.SeedShifts(ctx, shiftSvc); err != nil {
			return err
		}
	}

	scheduler := cron.NewScheduler()
	if cfg.Reconciliation.Enabled {
		cron.NewReconciliationJobs(leaveSvc, cfg.Reconciliation.Interval, leave.ReconcileOptions{
			MinAge:     cfg.Reconciliation.MinAge,
			AutoSettle: cfg.Reconciliation.AutoSettle,
		}).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg.App, cfg.SlogLevel(), JWTService, appHTTP.Handlers{
		Attendance:        appHTTP.NewAttendanceHandler(attendanceSvc, clk),
		Leave:             appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:          appHTTP.NewOvertimeHandler(overtimeSvc, clk),
		LateConsideration: appHTTP.NewLateConsiderationHandler(lateSvc),
		Notification:      appHTTP.NewNotificationHandler(notifier, JWTService),
		Shift:             appHTTP.NewShiftHandler(shiftSvc),
		Employee:          appHTTP.NewEmployeeHandler(employeeSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "storage", cfg.App.StorageDriver, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
