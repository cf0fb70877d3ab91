package dashboard

import (
	"net/http"

	"minicrm/internal/web"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *Service
	sessions SessionExpirer
}

func NewHandler(service *Service, sessions SessionExpirer) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/dashboard", h.Show)
}

func (h *Handler) Show(c *gin.Context) {
	sess := web.SessionFrom(c)
	view, err := h.service.Load(c.Request.Context(), sess)
	if err != nil {
		if h.sessions.Expire(c, err) {
			return
		}
		_ = c.Error(err)
		web.Render(c, web.StatusFor(err), "dashboard", web.Page{
			Title: "Dashboard",
			Alert: "Failed to fetch dashboard stats",
			Data:  Build(sess.User.Role, nil),
		})
		return
	}

	web.Render(c, http.StatusOK, "dashboard", web.Page{Title: "Dashboard", Data: view})
}
