package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Endpoint describes one route for the API catalog.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Access      string `json:"access"`
	Group       string `json:"-"`
	Description string `json:"description"`
}

type DocsHandler struct {
	title     string
	version   string
	endpoints []Endpoint
}

func NewDocsHandler(title, version string, endpoints []Endpoint) *DocsHandler {
	return &DocsHandler{title: title, version: version, endpoints: endpoints}
}

// Catalog groups endpoints in registration order.
func (h *DocsHandler) Catalog(ctx *gin.Context) {
	groups := make(map[string][]Endpoint)

	for _, e := range h.endpoints {
		groups[e.Group] = append(groups[e.Group], e)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"title":          h.title,
		"version":        h.version,
		"authentication": "Use Bearer token in Authorization header",
		"endpoints":      groups,
	})
}
