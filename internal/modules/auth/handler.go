package auth

import (
	"errors"
	"log"
	"net/http"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"
	"minicrm/internal/pkg/response"
	"minicrm/internal/pkg/validator"
	"minicrm/internal/policy"
	"minicrm/internal/web"

	"github.com/gin-gonic/gin"
)

// Handler serves the login, signup and logout pages.
type Handler struct {
	service  *Service
	sessions SessionKeeper
}

func NewHandler(service *Service, sessions SessionKeeper) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/signup", h.SignupPage)
	r.POST("/signup", h.Signup)
	r.POST("/logout", h.Logout)
}

func (h *Handler) Index(c *gin.Context) {
	if web.SessionFrom(c).Valid() {
		response.Found(c, "/dashboard")
		return
	}
	response.Found(c, "/login")
}

func (h *Handler) LoginPage(c *gin.Context) {
	page := web.Page{Title: "Login", Data: loginView{}}
	if c.Query("registered") == "1" {
		page.Notice = "Signup successful! Please login."
	}
	web.Render(c, http.StatusOK, "login", page)
}

func (h *Handler) Login(c *gin.Context) {
	var form LoginForm
	_ = c.ShouldBind(&form)

	sess, err := h.service.Login(c.Request.Context(), form)
	if err != nil {
		web.Render(c, web.StatusFor(err), "login", web.Page{
			Title: "Login",
			Alert: loginAlert(err),
			Data:  loginView{Email: form.Email},
		})
		return
	}

	if err := h.sessions.Begin(c, *sess); err != nil {
		log.Printf("session_begin_failed user_id=%s err=%v", sess.User.ID, err)
		web.Render(c, http.StatusInternalServerError, "login", web.Page{
			Title: "Login",
			Alert: "Login failed",
			Data:  loginView{Email: form.Email},
		})
		return
	}

	log.Printf("login user_id=%s role=%s", sess.User.ID, sess.User.Role)
	response.SeeOther(c, policy.LandingPath(sess.User.Role))
}

func (h *Handler) SignupPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "signup", web.Page{
		Title: "Sign Up",
		Data:  signupView{Form: SignupForm{Role: string(domain.RoleRep)}},
	})
}

func (h *Handler) Signup(c *gin.Context) {
	var form SignupForm
	_ = c.ShouldBind(&form)

	sess, err := h.service.Signup(c.Request.Context(), form)
	if err != nil {
		form.Password = ""
		web.Render(c, web.StatusFor(err), "signup", web.Page{
			Title: "Sign Up",
			Alert: signupAlert(err),
			Data:  signupView{Form: form, Errors: validator.Messages(err)},
		})
		return
	}

	if sess == nil {
		response.SeeOther(c, "/login?registered=1")
		return
	}

	if err := h.sessions.Begin(c, *sess); err != nil {
		log.Printf("session_begin_failed user_id=%s err=%v", sess.User.ID, err)
		response.SeeOther(c, "/login")
		return
	}
	response.SeeOther(c, policy.SignupLandingPath(sess.User.Role))
}

func (h *Handler) Logout(c *gin.Context) {
	h.sessions.End(c)
	response.SeeOther(c, "/login")
}

func loginAlert(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return "Please enter a valid email and password"
	}
	if msg := apiclient.ServerMessage(err); msg != "" {
		return msg
	}
	return "Login failed"
}

func signupAlert(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, ErrInvalidRole):
		return "Please choose a valid role"
	case errors.As(err, &verr):
		return "Please fill in all fields"
	}
	if msg := apiclient.ServerMessage(err); msg != "" {
		return msg
	}
	return "Signup failed"
}
