package leads

import (
	"errors"
	"log"
	"net/http"

	"minicrm/internal/domain"
	"minicrm/internal/pkg/response"
	"minicrm/internal/pkg/validator"
	"minicrm/internal/policy"
	"minicrm/internal/web"

	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	deletePrompt    = "Are you sure you want to delete this lead?"
)

type Handler struct {
	service  *Service
	sessions SessionExpirer
}

func NewHandler(service *Service, sessions SessionExpirer) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterRoutes expects a group that already requires a session.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/leads", h.List)
	r.POST("/leads", h.Create)
	r.GET("/leads/new", h.NewForm)
	r.GET("/leads/export.xlsx", h.Export)
	r.GET("/leads/:id/edit", h.EditForm)
	r.POST("/leads/:id", h.Update)
	r.GET("/leads/:id/delete", h.ConfirmDelete)
	r.POST("/leads/:id/delete", h.Delete)
	r.GET("/leads/:id/convert", h.ConvertPrompt)
	r.POST("/leads/:id/convert", h.Convert)
}

func (h *Handler) List(c *gin.Context) {
	sess := web.SessionFrom(c)
	board, err := h.service.List(c.Request.Context(), sess)
	if err != nil {
		h.fail(c, err, "Failed to fetch leads")
		return
	}
	h.renderBoard(c, http.StatusOK, board, "", "")
}

func (h *Handler) NewForm(c *gin.Context) {
	if !policy.CanMutateLeads(web.SessionFrom(c).User.Role) {
		response.Found(c, "/leads")
		return
	}
	web.Render(c, http.StatusOK, "lead_form", web.Page{Title: "New Lead", Data: formView{}})
}

func (h *Handler) EditForm(c *gin.Context) {
	sess := web.SessionFrom(c)
	if !policy.CanMutateLeads(sess.User.Role) {
		response.Found(c, "/leads")
		return
	}

	lead, err := h.service.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Found(c, "/leads")
			return
		}
		h.fail(c, err, "Failed to fetch leads")
		return
	}

	web.Render(c, http.StatusOK, "lead_form", web.Page{
		Title: "Edit Lead",
		Data: formView{
			ID:   lead.ID,
			Form: LeadForm{Name: lead.Name, Email: lead.Email, Phone: lead.Phone},
		},
	})
}

func (h *Handler) Create(c *gin.Context) {
	h.save(c, "")
}

func (h *Handler) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *Handler) save(c *gin.Context, id string) {
	var form LeadForm
	_ = c.ShouldBind(&form)

	err := h.service.Save(c.Request.Context(), web.SessionFrom(c), id, form)
	if err == nil {
		response.SeeOther(c, "/leads")
		return
	}
	if h.sessions.Expire(c, err) {
		return
	}
	if errors.Is(err, domain.ErrForbidden) {
		response.SeeOther(c, "/leads")
		return
	}

	title := "New Lead"
	if id != "" {
		title = "Edit Lead"
	}
	page := web.Page{
		Title: title,
		Data:  formView{ID: id, Form: form, Errors: validator.Messages(err)},
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		log.Printf("lead_save_failed lead_id=%s err=%v", id, err)
		page.Alert = "Failed to save lead"
	}
	web.Render(c, web.StatusFor(err), "lead_form", page)
}

func (h *Handler) ConfirmDelete(c *gin.Context) {
	id := c.Param("id")
	web.Render(c, http.StatusOK, "confirm", web.Page{
		Title: "Delete Lead",
		Data: confirmView{
			Message: deletePrompt,
			Action:  "/leads/" + id + "/delete",
			Cancel:  "/leads",
		},
	})
}

func (h *Handler) Delete(c *gin.Context) {
	sess := web.SessionFrom(c)
	confirmed := c.PostForm("confirm") == "yes"

	err := h.service.Delete(c.Request.Context(), sess, c.Param("id"), confirmed)
	if err != nil {
		log.Printf("lead_delete_failed lead_id=%s err=%v", c.Param("id"), err)
		h.fail(c, err, "Failed to delete lead")
		return
	}
	response.SeeOther(c, "/leads")
}

func (h *Handler) ConvertPrompt(c *gin.Context) {
	sess := web.SessionFrom(c)
	lead, err := h.service.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Found(c, "/leads")
			return
		}
		h.fail(c, err, "Failed to fetch leads")
		return
	}
	if !policy.CanMutateLeads(sess.User.Role) || !policy.CanConvert(*lead) {
		response.Found(c, "/leads")
		return
	}

	web.Render(c, http.StatusOK, "lead_convert", web.Page{
		Title: "Convert Lead",
		Data:  convertView{Lead: *lead, Value: "0"},
	})
}

func (h *Handler) Convert(c *gin.Context) {
	var form ConvertForm
	_ = c.ShouldBind(&form)
	sess := web.SessionFrom(c)
	id := c.Param("id")

	board, err := h.service.Convert(c.Request.Context(), sess, id, form)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			lead, _ := h.service.Get(c.Request.Context(), sess, id)
			view := convertView{Value: form.Value}
			if lead != nil {
				view.Lead = *lead
			} else {
				view.Lead = domain.Lead{ID: id}
			}
			web.Render(c, http.StatusUnprocessableEntity, "lead_convert", web.Page{
				Title: "Convert Lead",
				Alert: "Please enter a non-negative number",
				Data:  view,
			})
			return
		}
		if errors.Is(err, ErrAlreadyConverted) {
			// a reload of the result page posts the form again
			response.SeeOther(c, "/leads")
			return
		}
		log.Printf("lead_convert_failed lead_id=%s err=%v", id, err)
		h.fail(c, err, "Failed to convert lead")
		return
	}
	if board == nil {
		response.SeeOther(c, "/leads")
		return
	}

	log.Printf("lead_converted lead_id=%s user_id=%s", id, sess.User.ID)
	h.renderBoard(c, http.StatusOK, board, "", "Lead converted to opportunity!")
}

func (h *Handler) Export(c *gin.Context) {
	f, err := h.service.Export(c.Request.Context(), web.SessionFrom(c))
	if err != nil {
		h.fail(c, err, "Failed to fetch leads")
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="leads.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// fail renders the last known lead list with alert. An expired token sends
// the user to /login instead.
func (h *Handler) fail(c *gin.Context, err error, alert string) {
	if h.sessions.Expire(c, err) {
		return
	}
	_ = c.Error(err)

	board := h.service.Cached(c.Request.Context(), web.SessionFrom(c))
	h.renderBoard(c, web.StatusFor(err), board, alert, "")
}

func (h *Handler) renderBoard(c *gin.Context, status int, board *Board, alert, notice string) {
	web.Render(c, status, "leads", web.Page{
		Title:  "Leads",
		Alert:  alert,
		Notice: notice,
		Data:   board,
	})
}
