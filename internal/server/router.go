package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/handler"
	"github.com/noah-isme/school-erp-api/internal/middleware"
	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/service"
	"github.com/noah-isme/school-erp-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-erp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-erp-api/pkg/middleware/requestid"
	"github.com/noah-isme/school-erp-api/pkg/response"
	"github.com/noah-isme/school-erp-api/pkg/session"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Session    *handler.SessionHandler
	Dashboard  *handler.DashboardHandler
	Students   *handler.StudentHandler
	Notes      *handler.NoteHandler
	Attendance *handler.AttendanceHandler
	Fees       *handler.FeeHandler
	Campus     *handler.CampusHandler
	Advisory   *handler.AdvisoryHandler
	Exports    *handler.ExportHandler
	Metrics    *handler.MetricsHandler
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	EnableDocs     bool
	AllowedOrigins []string
	Cookie         session.Cookie
	Resolver       middleware.SessionResolver
	Metrics        *service.MetricsService
	Logger         *zap.Logger
	Handlers       Handlers
}

// NewRouter builds the gin engine with the middleware chain and every route.
func NewRouter(opts RouterOptions) *gin.Engine {
	logr := opts.Logger
	if logr == nil {
		logr = zap.NewNop()
	}
	h := opts.Handlers

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Session(opts.Resolver, opts.Cookie, logr))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/", func(c *gin.Context) {
		if user, ok := middleware.CurrentUser(c); ok {
			response.Redirect(c, user.Role.DashboardPath())
			return
		}
		response.Redirect(c, middleware.LoginPath)
	})
	r.GET(middleware.LoginPath, h.Session.LoginPage)

	auth := r.Group("/auth")
	auth.POST("/login", h.Session.Login)
	auth.POST("/logout", h.Session.Logout)
	auth.GET("/session", h.Session.Session)

	r.POST("/admissions", middleware.Audit(logr, "create", "admission"), h.Campus.SubmitAdmission)
	r.GET("/exports/:token", h.Exports.Download)

	admin := r.Group("/admin", middleware.ProtectPage(models.RoleAdmin))
	admin.GET("/dashboard", h.Dashboard.Admin)
	admin.POST("/dashboard/suggestions", h.Advisory.SuggestActions)
	admin.GET("/students", h.Students.List)
	admin.POST("/students", middleware.Audit(logr, "create", "student"), h.Students.Create)
	admin.POST("/students/insights", h.Advisory.Insights)
	admin.GET("/hostels", h.Campus.Hostels)
	admin.GET("/admissions", h.Campus.Admissions)
	admin.POST("/exports", middleware.Audit(logr, "create", "export"), h.Exports.Create)
	admin.GET("/exports/:id", h.Exports.Status)

	teacher := r.Group("/teacher", middleware.ProtectPage(models.RoleTeacher))
	teacher.GET("/dashboard", h.Dashboard.Teacher)
	teacher.GET("/classes", h.Dashboard.Classes)
	teacher.POST("/notes", middleware.Audit(logr, "create", "note"), h.Notes.AddContent)
	teacher.POST("/results", middleware.Audit(logr, "create", "result"), h.Notes.AddResult)
	teacher.POST("/attendance", middleware.Audit(logr, "save", "attendance"), h.Attendance.Save)
	teacher.POST("/students", middleware.Audit(logr, "create", "student"), h.Students.Create)

	student := r.Group("/student", middleware.ProtectPage(models.RoleStudent))
	student.GET("/dashboard", h.Dashboard.Student)
	student.GET("/notes", h.Notes.StudentNotes)
	student.GET("/attendance", h.Attendance.Summary)
	student.GET("/fees", h.Fees.Overview)
	student.POST("/fees/installments/:id/pay", middleware.Audit(logr, "pay", "installment"), h.Fees.Pay)
	student.GET("/results", h.Campus.Results)

	return r
}
