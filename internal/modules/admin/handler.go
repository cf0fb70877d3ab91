package admin

import (
	"log"
	"net/http"

	"minicrm/internal/pkg/response"
	"minicrm/internal/web"

	"github.com/gin-gonic/gin"
)

const deletePrompt = "Delete this user?"

type Handler struct {
	service  *Service
	sessions SessionExpirer
}

func NewHandler(service *Service, sessions SessionExpirer) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterRoutes expects a group restricted to admins.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/admin", h.List)
	r.POST("/admin/users/:id/role", h.ChangeRole)
	r.GET("/admin/users/:id/delete", h.ConfirmDelete)
	r.POST("/admin/users/:id/delete", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, NewFilter(c.Query("q"), c.Query("role")), "")
}

func (h *Handler) ChangeRole(c *gin.Context) {
	var form RoleForm
	_ = c.ShouldBind(&form)
	filter := formFilter(c)
	id := c.Param("id")

	if err := h.service.ChangeRole(c.Request.Context(), web.SessionFrom(c), id, form); err != nil {
		if h.sessions.Expire(c, err) {
			return
		}
		log.Printf("user_role_update_failed user_id=%s role=%q err=%v", id, form.Role, err)
		_ = c.Error(err)
		h.renderList(c, web.StatusFor(err), filter, "Failed to update role")
		return
	}

	log.Printf("user_role_updated user_id=%s role=%s", id, form.Role)
	response.SeeOther(c, filter.ListURL())
}

func (h *Handler) ConfirmDelete(c *gin.Context) {
	filter := NewFilter(c.Query("q"), c.Query("role"))
	web.Render(c, http.StatusOK, "confirm", web.Page{
		Title: "Delete User",
		Data: confirmView{
			Message: deletePrompt,
			Action:  "/admin/users/" + c.Param("id") + "/delete",
			Cancel:  filter.ListURL(),
			Hidden:  map[string]string{"q": filter.Search, "filter_role": filter.Role},
		},
	})
}

func (h *Handler) Delete(c *gin.Context) {
	filter := formFilter(c)
	id := c.Param("id")
	confirmed := c.PostForm("confirm") == "yes"

	if err := h.service.Delete(c.Request.Context(), web.SessionFrom(c), id, confirmed); err != nil {
		if h.sessions.Expire(c, err) {
			return
		}
		log.Printf("user_delete_failed user_id=%s err=%v", id, err)
		_ = c.Error(err)
		h.renderList(c, web.StatusFor(err), filter, "Failed to delete user")
		return
	}

	if confirmed {
		log.Printf("user_deleted user_id=%s", id)
	}
	response.SeeOther(c, filter.ListURL())
}

// renderList fetches the full list again and renders it with alert.
func (h *Handler) renderList(c *gin.Context, status int, filter Filter, alert string) {
	board, err := h.service.List(c.Request.Context(), web.SessionFrom(c), filter)
	if err != nil {
		if h.sessions.Expire(c, err) {
			return
		}
		_ = c.Error(err)
		if alert == "" {
			alert = "Failed to fetch users"
			status = web.StatusFor(err)
		}
		board = &Board{Filter: filter}
	}

	web.Render(c, status, "admin", web.Page{Title: "Admin", Alert: alert, Data: board})
}

func formFilter(c *gin.Context) Filter {
	return NewFilter(c.PostForm("q"), c.PostForm("filter_role"))
}
