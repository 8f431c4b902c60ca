package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/worklog-backend-go/internal/config"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Attendance        AttendanceHandler
	Leave             LeaveHandler
	Overtime          OvertimeHandler
	LateConsideration LateConsiderationHandler
	Notification      NotificationHandler
	Shift             ShiftHandler
	Employee          EmployeeHandler
}

func NewRouter(app config.AppConfig, logLevel slog.Level, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worklog"),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	self := middleware.RequirePermission(user.PermissionAttendanceSelf)
	submit := middleware.RequirePermission(user.PermissionRequestSubmit)
	reviewer := middleware.RequirePermission(user.PermissionRequestReview)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/notifications", func(r chi.Router) {
			// EventSource cannot send an Authorization header; the stream
			// authenticates with its own short-lived token.
			r.Get("/stream", h.Notification.Stream)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

				r.Get("/sse-token", h.Notification.GetSSEToken)
				r.With(self).Get("/reviews", h.Notification.Reviews)
				r.With(self).Post("/reviews/read-all", h.Notification.MarkAllRead)
				r.With(self).Post("/reviews/{kind}/{id}/read", h.Notification.MarkRead)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(self).Get("/today", h.Attendance.Today)
				r.With(self).Get("/history", h.Attendance.History)
				r.With(self).Get("/summary", h.Attendance.Summary)
				r.With(self).Get("/checks", h.Attendance.Checks)
				r.With(self).Post("/check-in", h.Attendance.CheckIn)
				r.With(self).Post("/lunch-start", h.Attendance.StartLunch)
				r.With(self).Post("/lunch-end", h.Attendance.EndLunch)
				r.With(self).Post("/check-out", h.Attendance.CheckOut)

				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/daily", h.Attendance.Daily)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.With(submit).Post("/", h.Leave.CreateRequest)
				r.With(submit).Get("/my", h.Leave.GetMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(reviewer)
					r.Get("/", h.Leave.ListRequests)
					r.Get("/pending-count", h.Leave.PendingCount)
					r.Get("/{id}", h.Leave.GetRequest)
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})

				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/{id}/settle", h.Leave.SettleRequest)
			})

			r.Route("/overtime-requests", func(r chi.Router) {
				r.With(submit).Post("/", h.Overtime.CreateRequest)
				r.With(submit).Get("/my", h.Overtime.GetMyRequests)
				r.With(submit).Get("/monthly", h.Overtime.Monthly)

				r.Group(func(r chi.Router) {
					r.Use(reviewer)
					r.Get("/", h.Overtime.ListRequests)
					r.Get("/pending-count", h.Overtime.PendingCount)
					r.Get("/{id}", h.Overtime.GetRequest)
					r.Post("/{id}/approve", h.Overtime.ApproveRequest)
					r.Post("/{id}/reject", h.Overtime.RejectRequest)
				})
			})

			r.Route("/late-considerations", func(r chi.Router) {
				r.With(submit).Post("/", h.LateConsideration.CreateRequest)
				r.With(submit).Get("/my", h.LateConsideration.GetMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(reviewer)
					r.Get("/", h.LateConsideration.ListRequests)
					r.Get("/pending-count", h.LateConsideration.PendingCount)
					r.Get("/{id}", h.LateConsideration.GetRequest)
					r.Post("/{id}/approve", h.LateConsideration.ApproveRequest)
					r.Post("/{id}/reject", h.LateConsideration.RejectRequest)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.With(self).Get("/me", h.Shift.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Get("/", h.Shift.List)
					r.Post("/", h.Shift.Create)
					r.Get("/{id}", h.Shift.Get)
					r.Put("/{id}", h.Shift.Update)
					r.Post("/{id}/activate", h.Shift.Activate)
					r.Post("/{id}/deactivate", h.Shift.Deactivate)
					r.Post("/{id}/reassign", h.Shift.Reassign)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(self).Get("/me", h.Employee.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Get("/{id}", h.Employee.GetEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
					r.Put("/{id}/leave-credits", h.Employee.SetLeaveCredits)
					r.Put("/{id}/shift", h.Employee.AssignShift)
					r.Post("/{id}/deactivate", h.Employee.InactivateEmployee)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
