package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_admin/internal/controller"
	"internship_admin/internal/middleware"
	"internship_admin/internal/models"
	"internship_admin/internal/store"
)

// Collections maps the console path segment to the listing it serves.
var Collections = map[string]models.EntityKind{
	"students":     models.KindStudent,
	"companies":    models.KindCompany,
	"internships":  models.KindInternship,
	"applications": models.KindApplication,
}

// EntityHandler serves the create / edit / delete actions of every listing
// and the plain listings of students, companies and internships.
type EntityHandler struct {
	*BaseHandler
	ctrl     *controller.Controller
	listings *store.Listings
}

func NewEntityHandler(base *BaseHandler, ctrl *controller.Controller) *EntityHandler {
	return &EntityHandler{
		BaseHandler: base,
		ctrl:        ctrl,
		listings:    ctrl.Listings(),
	}
}

func (h *EntityHandler) RegisterRoutes(r *gin.RouterGroup) {
	for segment, kind := range Collections {
		group := r.Group("/" + segment)
		if kind != models.KindApplication {
			// applications have a filtered view in ApplicationHandler
			group.GET("", h.List(kind))
		}
		group.POST("", h.Create(kind))
		group.PUT("/:id", h.Update(kind))
		group.DELETE("/:id", middleware.ConfirmationMiddleware(), h.Delete(kind))
	}
}

func (h *EntityHandler) List(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows any
		var version uint64
		switch kind {
		case models.KindStudent:
			rows, version = h.listings.Students.Snapshot()
		case models.KindCompany:
			rows, version = h.listings.Companies.Snapshot()
		case models.KindInternship:
			rows, version = h.listings.Internships.Snapshot()
		default:
			rows, version = h.listings.Applications.Snapshot()
		}
		c.JSON(http.StatusOK, gin.H{"rows": rows, "version": version})
	}
}

func (h *EntityHandler) Create(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok := h.BindForm(c, formShape(kind))
		if !ok {
			return
		}
		res, err := h.ctrl.Dispatch(c.Request.Context(), controller.CreateAction{Entity: kind, Form: form})
		h.RespondAction(c, res, err, http.StatusCreated)
	}
}

func (h *EntityHandler) Update(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseParamInt64(c, "id")
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		form, ok := h.BindForm(c, formShape(kind))
		if !ok {
			return
		}
		res, err := h.ctrl.Dispatch(c.Request.Context(), controller.UpdateAction{Entity: kind, ID: id, Form: form})
		h.RespondAction(c, res, err, http.StatusOK)
	}
}

func (h *EntityHandler) Delete(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseParamInt64(c, "id")
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		res, err := h.ctrl.Dispatch(c.Request.Context(), controller.DeleteAction{Entity: kind, ID: id})
		h.RespondAction(c, res, err, http.StatusOK)
	}
}
