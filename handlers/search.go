package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/internal/search"
)

// SearchHandler proxies keyword searches to the news provider. No token is required.
type SearchHandler struct {
	svc *search.Service
}

func NewSearchHandler(svc *search.Service) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
}

func (h *SearchHandler) Search(c *gin.Context) {
	res, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}
