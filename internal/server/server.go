package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minicrm/internal/apiclient"
	"minicrm/internal/middleware"
	"minicrm/internal/modules/admin"
	"minicrm/internal/modules/auth"
	"minicrm/internal/modules/dashboard"
	"minicrm/internal/modules/leads"
	"minicrm/internal/modules/opportunities"
	"minicrm/internal/pkg/response"
	"minicrm/internal/session"
	"minicrm/internal/web"
)

// Deps is everything the router needs.
type Deps struct {
	API       *apiclient.Client
	Store     *session.Store
	Sessions  *middleware.Sessions
	Renderer  *web.Renderer
	AccessLog bool
}

// New builds the page router.
func New(d Deps) *gin.Engine {
	authHandler := auth.NewHandler(auth.NewService(d.API), d.Sessions)
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(d.API), d.Sessions)
	leadsHandler := leads.NewHandler(leads.NewService(d.API, d.Store), d.Sessions)
	opportunitiesHandler := opportunities.NewHandler(opportunities.NewService(d.API, d.Store), d.Sessions)
	adminHandler := admin.NewHandler(admin.NewService(d.API), d.Sessions)

	r := gin.New()
	r.HTMLRender = d.Renderer
	if d.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestID(), middleware.ErrorLogger(), d.Sessions.Load())

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// public
	authHandler.RegisterRoutes(r)

	// signed in
	protected := r.Group("/", d.Sessions.Required())
	{
		dashboardHandler.RegisterRoutes(protected)
		leadsHandler.RegisterRoutes(protected)
		opportunitiesHandler.RegisterRoutes(protected)
	}

	adminGroup := r.Group("/", middleware.AdminOnly())
	{
		adminHandler.RegisterRoutes(adminGroup)
	}

	r.NoRoute(func(c *gin.Context) {
		web.Render(c, http.StatusNotFound, "error", web.Page{Title: "Not Found"})
	})

	return r
}
