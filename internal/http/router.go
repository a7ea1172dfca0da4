package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/http/handlers"
	"github.com/prestigebuild/siteapi/internal/http/middlewares"
	"github.com/prestigebuild/siteapi/internal/observability"
)

type RouterDeps struct {
	Config config.Config
	Logger *slog.Logger
	Prom   *observability.Prom

	Auth *middlewares.AuthMiddleware

	Health       *handlers.HealthHandler
	AuthH        *handlers.AuthHandler
	Projects     *handlers.ProjectsHandler
	Services     *handlers.ServicesHandler
	Testimonials *handlers.TestimonialsHandler
	Contacts     *handlers.ContactsHandler
	Stats        *handlers.StatsHandler
	Uploads      *handlers.UploadsHandler

	UploadDir string
}

// NewRouter assembles the gin engine: global middleware first, then the
// public surface, then the admin surface behind auth.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("siteapi"))
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.SecurityHeaders())
	router.Use(middlewares.CORSMiddleware(deps.Config.AllowedOrigins))
	router.Use(deps.Prom.GinHandleMiddleware())

	// uploaded images, served as plain static files
	router.Static("/uploads", deps.UploadDir)

	router.GET("/healthz", deps.Health.Healthz)
	router.GET("/readyz", deps.Health.Readyz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.GET("", apiIndex)
	api.GET("/health", deps.Health.Healthz)

	// JSON-body routes; uploads are multipart and stay out of this group
	jsonBody := api.Group("")
	jsonBody.Use(middlewares.RequireJSON())
	jsonBody.Use(middlewares.MaxBodyBytes(1 << 20))

	// public surface

	api.GET("/projects", deps.Projects.ListProjects)
	api.GET("/projects/:id", deps.Projects.GetProjectById)

	api.GET("/services", deps.Services.ListServices)
	api.GET("/services/:slug", deps.Services.GetServiceBySlug)

	api.GET("/testimonials", deps.Testimonials.ListTestimonials)
	api.GET("/testimonials/stats", deps.Testimonials.GetTestimonialStats)

	api.GET("/stats/home", deps.Stats.GetHomeStats)

	jsonBody.POST("/testimonials", deps.Testimonials.SubmitTestimonial)
	jsonBody.POST("/contacts", deps.Contacts.SubmitContact)
	jsonBody.POST("/auth/login", deps.AuthH.Login)
	jsonBody.POST("/auth/register", deps.AuthH.Register)

	// admin surface

	admin := api.Group("")
	admin.Use(deps.Auth.RequireAuth())
	admin.Use(deps.Auth.RequireRole("admin"))

	adminJSON := admin.Group("")
	adminJSON.Use(middlewares.RequireJSON())
	adminJSON.Use(middlewares.MaxBodyBytes(1 << 20))

	admin.GET("/auth/me", deps.AuthH.Me)
	admin.POST("/auth/logout", deps.AuthH.Logout)
	adminJSON.POST("/auth/change-password", deps.AuthH.ChangePassword)

	adminJSON.POST("/projects", deps.Projects.CreateProject)
	adminJSON.PUT("/projects/:id", deps.Projects.UpdateProject)
	admin.DELETE("/projects/:id", deps.Projects.DeleteProject)

	adminJSON.POST("/services", deps.Services.CreateService)
	adminJSON.PUT("/services/:id", deps.Services.UpdateService)
	admin.DELETE("/services/:id", deps.Services.DeleteService)

	admin.GET("/testimonials/all", deps.Testimonials.ListAllTestimonials)
	admin.GET("/testimonials/:id", deps.Testimonials.GetTestimonialById)
	adminJSON.PUT("/testimonials/:id", deps.Testimonials.UpdateTestimonial)
	admin.PATCH("/testimonials/:id/approve", deps.Testimonials.ApproveTestimonial)
	admin.DELETE("/testimonials/:id", deps.Testimonials.DeleteTestimonial)

	admin.GET("/contacts", deps.Contacts.ListContacts)
	adminJSON.PATCH("/contacts/:id/status", deps.Contacts.UpdateContactStatus)
	admin.DELETE("/contacts/:id", deps.Contacts.DeleteContact)

	// multipart, so no RequireJSON; the store enforces per-file size limits
	admin.POST("/uploads/single", deps.Uploads.UploadImage)
	admin.POST("/uploads/multiple", deps.Uploads.UploadImages)
	admin.GET("/uploads", deps.Uploads.ListUploads)
	admin.DELETE("/uploads/:filename", deps.Uploads.DeleteUpload)

	return router
}

func apiIndex(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"name":    "Prestige Build Construction API",
		"version": "1.0",
		"endpoints": gin.H{
			"projects":     "/api/projects",
			"services":     "/api/services",
			"testimonials": "/api/testimonials",
			"contact":      "/api/contacts",
			"stats":        "/api/stats/home",
			"auth":         "/api/auth/login",
		},
	})
}
