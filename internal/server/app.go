// Package server assembles services and handlers into a runnable HTTP app.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/handler"
	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/repository"
	"github.com/noah-isme/school-erp-api/internal/service"
	"github.com/noah-isme/school-erp-api/pkg/ai"
	"github.com/noah-isme/school-erp-api/pkg/config"
	"github.com/noah-isme/school-erp-api/pkg/jobs"
	"github.com/noah-isme/school-erp-api/pkg/session"
	"github.com/noah-isme/school-erp-api/pkg/storage"
)

// Store is the record store surface the app needs. Both the in-memory and
// the Postgres store satisfy it.
type Store interface {
	FindUser(ctx context.Context, id string, role models.UserRole) (*models.User, error)
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.User, error)
	CountStudents(ctx context.Context) (int, error)
	CreateStudent(ctx context.Context, student *models.User) error
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) error
	SaveAttendance(ctx context.Context, date, studentID string, status models.AttendanceStatus) error
	ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error)
	GetFeeSchedule(ctx context.Context) (*models.FeeSchedule, error)
	PayInstallment(ctx context.Context, id int64, paidOn string) error
	ListHostels(ctx context.Context) ([]models.Hostel, error)
	ListResults(ctx context.Context) ([]models.SubjectResult, error)
	CreateAdmission(ctx context.Context, admission *models.Admission) error
	ListAdmissions(ctx context.Context) ([]models.Admission, error)
	CreateExportJob(ctx context.Context, job *models.ExportJob) error
	GetExportJob(ctx context.Context, id string) (*models.ExportJob, error)
	UpdateExportJob(ctx context.Context, id string, update models.ExportJobUpdate) error
	ListQueuedExportJobs(ctx context.Context, limit int) ([]models.ExportJob, error)
	ListFinishedExportJobsBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error)
}

var (
	_ Store = (*repository.MemoryStore)(nil)
	_ Store = (*repository.PostgresStore)(nil)
)

// Deps are the infrastructure pieces built by the caller.
type Deps struct {
	Config    *config.Config
	Store     Store
	Cache     service.CacheRepository
	Generator ai.Generator
	Logger    *zap.Logger
	Readiness map[string]handler.ReadinessCheck
}

// App is the assembled application.
type App struct {
	Router  *gin.Engine
	Metrics *service.MetricsService

	exports *service.ExportJobService
	queue   *jobs.Queue
}

// NewApp wires every service and handler from deps.
func NewApp(deps Deps) (*App, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Store == nil {
		return nil, errors.New("store is required")
	}
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}
	validate := validator.New()
	metrics := service.NewMetricsService()

	cacheEnabled := deps.Cache != nil
	cache := service.NewCacheService(deps.Cache, metrics, cfg.Dashboard.CacheTTL, logr.Named("cache"), cacheEnabled)

	codec, err := session.NewCodec(cfg.Session.Codec, session.Options{
		Secret:   cfg.Session.Secret,
		BlockKey: cfg.Session.BlockKey,
		Issuer:   cfg.Session.Issuer,
		MaxAge:   cfg.Session.MaxAge,
	})
	if err != nil {
		return nil, err
	}
	sessions, err := service.NewSessionService(deps.Store, codec, cfg.Session.SharedPasswordHash, validate, metrics, logr.Named("session"))
	if err != nil {
		return nil, err
	}

	students := service.NewStudentService(deps.Store, cache, validate, logr.Named("students"))
	notes := service.NewNoteService(deps.Store, validate, logr.Named("notes"))
	attendance := service.NewAttendanceService(deps.Store, validate, logr.Named("attendance"))
	fees := service.NewFeeService(deps.Store, cache, logr.Named("fees"))
	campus := service.NewCampusService(deps.Store, validate, logr.Named("campus"))
	dashboards := service.NewDashboardService(deps.Store, cache, logr.Named("dashboard"), service.DashboardServiceConfig{
		CacheTTL: cfg.Dashboard.CacheTTL,
	})
	advisory := service.NewAdvisoryService(deps.Generator, cache, metrics, validate, logr.Named("advisory"), service.AdvisoryServiceConfig{
		Timeout:  cfg.AI.Timeout,
		CacheTTL: cfg.AI.CacheTTL,
	})

	app := &App{Metrics: metrics}
	exportHandler := handler.NewExportHandler(nil)
	if cfg.Exports.Enabled {
		exportSvc, err := app.buildExports(cfg, deps.Store, metrics, validate, logr.Named("exports"))
		if err != nil {
			return nil, err
		}
		exportHandler = handler.NewExportHandler(exportSvc)
	}

	cookie := session.Cookie{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.SecureCookies(),
	}
	app.Router = NewRouter(RouterOptions{
		EnableDocs:     cfg.Env != config.EnvProduction,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Cookie:         cookie,
		Resolver:       sessions,
		Metrics:        metrics,
		Logger:         logr,
		Handlers: Handlers{
			Session:    handler.NewSessionHandler(sessions, cookie),
			Dashboard:  handler.NewDashboardHandler(dashboards),
			Students:   handler.NewStudentHandler(students),
			Notes:      handler.NewNoteHandler(notes),
			Attendance: handler.NewAttendanceHandler(attendance),
			Fees:       handler.NewFeeHandler(fees),
			Campus:     handler.NewCampusHandler(campus),
			Advisory:   handler.NewAdvisoryHandler(advisory, dashboards, students),
			Exports:    exportHandler,
			Metrics:    handler.NewMetricsHandler(metrics, deps.Readiness),
		},
	})
	return app, nil
}

func (a *App) buildExports(cfg *config.Config, store Store, metrics *service.MetricsService, validate *validator.Validate, logr *zap.Logger) (*service.ExportJobService, error) {
	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exporter := service.NewExportService(store, files, signer, service.ExportConfig{
		DownloadPrefix: "/exports",
		ResultTTL:      cfg.Exports.SignedURLTTL,
	}, logr)

	worker := service.NewExportWorker(store, exporter, metrics, cfg.Exports.WorkerRetries, logr)
	a.queue = jobs.NewQueue("exports", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		JobTimeout: 2 * time.Minute,
		Logger:     logr,
	})
	a.exports = service.NewExportJobService(store, a.queue, exporter, validate, logr, service.ExportJobServiceConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	return a.exports, nil
}

// Start launches background workers. They stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a.queue == nil {
		return
	}
	a.queue.Start(ctx)
	a.exports.RecoverPendingJobs(ctx)
	a.exports.StartCleanup(ctx)
}

// Stop drains the export queue.
func (a *App) Stop() {
	if a.queue != nil {
		a.queue.Stop()
	}
}
