package controllers

import (
	"net/http"
	"strings"

	"github.com/kdalam/furnidex/app/views"
	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/pkg/auth"
	"github.com/kdalam/furnidex/pkg/authn"
	"github.com/kdalam/furnidex/pkg/bind"
	"github.com/kdalam/furnidex/pkg/logger"
	"github.com/kdalam/furnidex/pkg/response"
	"github.com/kdalam/furnidex/pkg/session"
)

type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// checkAdmin verifies an allowlisted username plus the admin password.
func checkAdmin(username, password string) bool {
	return authn.IsAdminUser(username) &&
		auth.CheckPassword(config.AdminPasswordHash(), password)
}

// LoginForm renders the admin login page.
func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, r, "login", nil)
}

// Login authenticates an admin and stores the username in the session.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if !checkAdmin(username, password) {
		logger.Warn("auth: failed admin login", "username", username)
		views.Redirect(w, r, "/login", "danger", "بيانات الدخول غير صحيحة")
		return
	}

	sess := session.FromCtx(r)
	sess.Set(authn.SessionUserKey, username)
	sess.Set(authn.SessionViewerKey, true)
	sess.Save(w)

	logger.Info("auth: admin logged in", "username", username)
	views.Redirect(w, r, "/upload", "success", "تم تسجيل الدخول بنجاح")
}

// Logout destroys the session.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	sess.Invalidate()
	sess.Save(w)
	http.Redirect(w, r, "/search", http.StatusSeeOther)
}

type tokenInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// APIToken exchanges admin credentials for a signed JWT so API clients can
// hit the admin endpoints with an Authorization header.
func (c *AuthController) APIToken(w http.ResponseWriter, r *http.Request) {
	var in tokenInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if !checkAdmin(in.Username, in.Password) {
		logger.Warn("auth: failed token request", "username", in.Username)
		response.Unauthorized(w)
		return
	}

	token, err := auth.GenerateToken(in.Username, true)
	if err != nil {
		logger.Error("auth: token generation failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	response.Success(w, map[string]string{"token": token})
}
