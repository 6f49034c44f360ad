package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_admin/internal/models"
	"internship_admin/internal/store"
)

// SummaryHandler serves the dashboard counters and the liveness probe.
type SummaryHandler struct {
	*BaseHandler
	listings *store.Listings
}

func NewSummaryHandler(base *BaseHandler, listings *store.Listings) *SummaryHandler {
	return &SummaryHandler{BaseHandler: base, listings: listings}
}

func (h *SummaryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/summary", h.GetSummary)
}

func (h *SummaryHandler) GetSummary(c *gin.Context) {
	byCategory := map[models.StatusCategory]int{
		models.CategorySuccess: 0,
		models.CategoryWarning: 0,
		models.CategoryDanger:  0,
		models.CategoryInfo:    0,
		models.CategoryNeutral: 0,
	}
	byStatus := make(map[string]int)
	for _, a := range h.listings.Applications.List() {
		byCategory[a.Category()]++
		byStatus[a.Status]++
	}
	c.JSON(http.StatusOK, gin.H{
		"counts":      h.listings.Counts(),
		"by_category": byCategory,
		"by_status":   byStatus,
	})
}

func (h *SummaryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
