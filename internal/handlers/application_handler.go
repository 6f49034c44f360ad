package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"internship_admin/internal/controller"
	"internship_admin/internal/filter"
	"internship_admin/internal/logger"
	"internship_admin/internal/models"
	"internship_admin/internal/notify"
	"internship_admin/internal/store"
)

const msgResumeUnavailable = "Resume download not implemented in demo"

// ApplicationHandler serves the filtered applications views, the status
// action and the detail panel.
type ApplicationHandler struct {
	*BaseHandler
	ctrl     *controller.Controller
	listings *store.Listings
	notifier controller.Notifier
	memo     filter.Memo
}

func NewApplicationHandler(base *BaseHandler, ctrl *controller.Controller, notifier controller.Notifier) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler: base,
		ctrl:        ctrl,
		listings:    ctrl.Listings(),
		notifier:    notifier,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	apps := r.Group("/applications")
	{
		apps.GET("", h.View)
		apps.GET("/table", h.Table)
		apps.GET("/export", h.Export)
		apps.PUT("/:id/status", h.UpdateStatus)
		apps.POST("/:id/view", h.OpenDetail)
		apps.DELETE("/:id/view", h.CloseDetail)
		apps.POST("/:id/resume", h.Resume)
	}
	r.GET("/detail", h.Detail)
	r.GET("/statuses", h.Statuses)
}

type applicationView struct {
	Criteria     filter.Criteria   `json:"criteria"`
	Applications []applicationItem `json:"applications"`
	Summary      filter.Summary    `json:"summary"`
	Info         string            `json:"info"`
	Version      uint64            `json:"version"`
}

type applicationItem struct {
	models.Application
	Position string                `json:"position"`
	Category models.StatusCategory `json:"category"`
	Class    string                `json:"status_class"`
	Applied  string                `json:"applied"`
}

func itemOf(a models.Application) applicationItem {
	cat := a.Category()
	return applicationItem{
		Application: a,
		Position:    a.Position(),
		Category:    cat,
		Class:       cat.Class(),
		Applied:     a.AppliedAt.Display(),
	}
}

// criteria binds the selector. Without a status parameter the selector is
// "all"; an explicit empty ?status= selects rows without a status.
func (h *ApplicationHandler) criteria(c *gin.Context) (filter.Criteria, bool) {
	crit := filter.DefaultCriteria()
	if !h.BindAndValidate_Query(c, &crit) {
		return crit, false
	}
	if _, ok := c.GetQuery("status"); !ok {
		crit.Status = filter.StatusAll
	}
	return crit, true
}

// View is the structured applications view.
func (h *ApplicationHandler) View(c *gin.Context) {
	crit, ok := h.criteria(c)
	if !ok {
		return
	}
	all, version := h.listings.Applications.Snapshot()
	shown := h.memo.Get(version, all, crit)

	items := make([]applicationItem, len(shown))
	for i, a := range shown {
		items[i] = itemOf(a)
	}
	summary := filter.Summary{Shown: len(shown), Total: len(all)}
	c.JSON(http.StatusOK, applicationView{
		Criteria:     crit,
		Applications: items,
		Summary:      summary,
		Info:         summary.String(),
		Version:      version,
	})
}

// Table is the row projection: every row, each marked visible or hidden.
func (h *ApplicationHandler) Table(c *gin.Context) {
	crit, ok := h.criteria(c)
	if !ok {
		return
	}
	all, version := h.listings.Applications.Snapshot()
	rows := filter.RenderAll(all)
	summary := filter.Rows(rows, crit)
	c.JSON(http.StatusOK, gin.H{
		"criteria": crit,
		"rows":     rows,
		"summary":  summary,
		"info":     summary.String(),
		"version":  version,
	})
}

var exportHeader = []string{"id", "student", "email", "internship", "company", "status", "applied_at"}

// Export writes the filtered view as CSV.
func (h *ApplicationHandler) Export(c *gin.Context) {
	crit, ok := h.criteria(c)
	if !ok {
		return
	}
	all, version := h.listings.Applications.Snapshot()
	shown := h.memo.Get(version, all, crit)

	filename := fmt.Sprintf("applications-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	records := make([][]string, 0, len(shown)+1)
	records = append(records, exportHeader)
	for _, a := range shown {
		applied := a.AppliedAt.Raw
		if !a.AppliedAt.Time.IsZero() {
			applied = a.AppliedAt.Time.Format(time.RFC3339)
		}
		records = append(records, []string{
			strconv.FormatInt(a.GetID(), 10),
			string(a.StudentName),
			string(a.StudentEmail),
			a.Position(),
			string(a.CompanyName),
			a.Status,
			applied,
		})
	}
	if err := w.WriteAll(records); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to write CSV export", err)
	}
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	var req StatusUpdateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	res, err := h.ctrl.Dispatch(c.Request.Context(), controller.StatusUpdateAction{ID: id, Status: req.Status})
	h.RespondAction(c, res, err, http.StatusOK)
}

func (h *ApplicationHandler) OpenDetail(c *gin.Context) {
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	state, err := h.ctrl.OpenDetail(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *ApplicationHandler) CloseDetail(c *gin.Context) {
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.listings.Detail.CloseIf(id)
	c.JSON(http.StatusOK, h.listings.Detail.State())
}

func (h *ApplicationHandler) Detail(c *gin.Context) {
	c.JSON(http.StatusOK, h.listings.Detail.State())
}

// Resume has no backing endpoint; the user is told so.
func (h *ApplicationHandler) Resume(c *gin.Context) {
	if _, err := ParseParamInt64(c, "id"); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	n := h.notifier.Notify(notify.LevelInfo, msgResumeUnavailable)
	c.JSON(http.StatusOK, gin.H{"notification": n})
}

// Statuses lists the selectable statuses with their display classes.
func (h *ApplicationHandler) Statuses(c *gin.Context) {
	type option struct {
		Status   models.ApplicationStatus `json:"status"`
		Category models.StatusCategory    `json:"category"`
		Class    string                   `json:"status_class"`
	}
	out := make([]option, len(models.KnownStatuses))
	for i, s := range models.KnownStatuses {
		cat := models.CategoryOf(string(s))
		out[i] = option{Status: s, Category: cat, Class: cat.Class()}
	}
	c.JSON(http.StatusOK, gin.H{"statuses": out})
}
