package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/internal/users"
	"github.com/newsbook/newsbook-api/pkg/middleware"
)

// AuthHandler holds dependencies
type AuthHandler struct {
	usersSvc *users.Service
	verifier middleware.Verifier
}

func NewAuthHandler(u *users.Service, v middleware.Verifier) *AuthHandler {
	return &AuthHandler{usersSvc: u, verifier: v}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/signup", h.Signup)
	a.POST("/signin", h.Signin)
	a.GET("/me", middleware.AuthMiddleware(h.verifier), h.Me)
}

// Signup creates an account and returns its public fields.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req users.SignupInput
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.usersSvc.Signup(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, id)
}

// Signin exchanges credentials for a token.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req users.SigninInput
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.usersSvc.Signin(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Me echoes the identity resolved by the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		_ = c.Error(apperr.Unauthorized("Auth token missing"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": id})
}

// bindJSON decodes the request body into v. An empty body decodes to the zero value so
// that validation can report every missing field; malformed JSON is a BadRequest.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		e := apperr.BadRequest("Invalid JSON body")
		e.Err = err
		_ = c.Error(e)
		return false
	}
	return true
}
