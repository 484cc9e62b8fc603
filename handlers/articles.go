package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/internal/article"
	"github.com/newsbook/newsbook-api/internal/article/service"
	"github.com/newsbook/newsbook-api/internal/models"
	"github.com/newsbook/newsbook-api/pkg/middleware"
)

// ArticleHandler exposes the caller's saved articles. Every route requires a token.
type ArticleHandler struct {
	svc      *service.Service
	verifier middleware.Verifier
}

func NewArticleHandler(svc *service.Service, v middleware.Verifier) *ArticleHandler {
	return &ArticleHandler{svc: svc, verifier: v}
}

func (h *ArticleHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/articles", middleware.AuthMiddleware(h.verifier))
	a.GET("", h.List)
	a.POST("", h.Create)
	a.DELETE("/:id", h.Delete)
}

func (h *ArticleHandler) List(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ArticleHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req article.Fields
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.svc.Create(c.Request.Context(), caller, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func requireCaller(c *gin.Context) (models.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		_ = c.Error(apperr.Unauthorized("Auth token missing"))
	}
	return id, ok
}
