package opportunities

import (
	"errors"
	"log"
	"net/http"

	"minicrm/internal/domain"
	"minicrm/internal/pkg/response"
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
	r.GET("/opportunities", h.List)
	r.GET("/opportunities/:id/edit", h.Edit)
	r.POST("/opportunities/:id/value", h.UpdateValue)
	r.POST("/opportunities/:id/stage", h.UpdateStage)
}

func (h *Handler) List(c *gin.Context) {
	board, err := h.service.List(c.Request.Context(), web.SessionFrom(c))
	if err != nil {
		h.fail(c, err, "Failed to fetch opportunities")
		return
	}
	h.render(c, http.StatusOK, board, "")
}

func (h *Handler) Edit(c *gin.Context) {
	board, err := h.service.Edit(c.Request.Context(), web.SessionFrom(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrOpportunityNotFound) {
			response.Found(c, "/opportunities")
			return
		}
		h.fail(c, err, "Failed to fetch opportunities")
		return
	}
	h.render(c, http.StatusOK, board, "")
}

func (h *Handler) UpdateValue(c *gin.Context) {
	var form ValueForm
	_ = c.ShouldBind(&form)
	sess := web.SessionFrom(c)
	id := c.Param("id")

	err := h.service.UpdateValue(c.Request.Context(), sess, id, form)
	if err == nil {
		response.SeeOther(c, "/opportunities")
		return
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		board := h.service.Cached(c.Request.Context(), sess)
		for i := range board.Opportunities {
			if board.Opportunities[i].ID == id {
				board.Editing = &board.Opportunities[i]
			}
		}
		board.EditValue = form.Value
		h.render(c, http.StatusUnprocessableEntity, board, "Please enter a non-negative number")
		return
	}

	log.Printf("opportunity_update_failed opportunity_id=%s err=%v", id, err)
	h.fail(c, err, "Failed to update opportunity")
}

func (h *Handler) UpdateStage(c *gin.Context) {
	var form StageForm
	_ = c.ShouldBind(&form)
	id := c.Param("id")

	board, err := h.service.UpdateStage(c.Request.Context(), web.SessionFrom(c), id, form)
	if err != nil {
		log.Printf("opportunity_stage_failed opportunity_id=%s stage=%q err=%v", id, form.Stage, err)
		h.fail(c, err, "Failed to update stage")
		return
	}
	h.render(c, http.StatusOK, board, "")
}

func (h *Handler) fail(c *gin.Context, err error, alert string) {
	if h.sessions.Expire(c, err) {
		return
	}
	_ = c.Error(err)
	h.render(c, web.StatusFor(err), h.service.Cached(c.Request.Context(), web.SessionFrom(c)), alert)
}

func (h *Handler) render(c *gin.Context, status int, board *Board, alert string) {
	web.Render(c, status, "opportunities", web.Page{
		Title: "Opportunities",
		Alert: alert,
		Data:  board,
	})
}
