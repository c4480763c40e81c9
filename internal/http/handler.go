package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"plate-service/internal/http/middleware"
	"plate-service/internal/model"
	"plate-service/internal/service"
	"plate-service/internal/validation"
)

type Handler struct {
	countryService  *service.CountryService
	templateService *service.TemplateService
	matchService    *service.MatchService
	statusService   *service.StatusService
	log             zerolog.Logger
}

func NewHandler(
	countryService *service.CountryService,
	templateService *service.TemplateService,
	matchService *service.MatchService,
	statusService *service.StatusService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		countryService:  countryService,
		templateService: templateService,
		matchService:    matchService,
		statusService:   statusService,
		log:             log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	admin := protected.Group("/admin")
	{
		admin.GET("/countries", h.listCountries)
		admin.PUT("/countries/:id/enabled", h.setCountryEnabled)
		admin.GET("/countries/:id/templates", h.listTemplates)
		admin.PUT("/countries/:id/templates", h.replaceTemplates)
		admin.POST("/templates/validate", h.validateTemplate)
		admin.GET("/configuration-status", h.getConfigurationStatus)
	}

	plates := protected.Group("/plates")
	{
		plates.POST("/match", h.matchPlate)
		plates.GET("/recognitions/matches", h.matchRecentDetections)
	}
}

func (h *Handler) listCountries(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	countries, err := h.countryService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(countries))
}

func (h *Handler) setCountryEnabled(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid country id"))
		return
	}

	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if err := h.countryService.SetEnabled(c.Request.Context(), principal, id, *req.Enabled); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"id": id, "enabled": *req.Enabled}))
}

func (h *Handler) listTemplates(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid country id"))
		return
	}

	templates, err := h.templateService.ListForCountry(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(templates))
}

type templateRequest struct {
	ID          uint   `json:"id"`
	Pattern     string `json:"pattern" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Priority    int    `json:"priority" binding:"required"`
	Active      *bool  `json:"active"`
	Description string `json:"description"`
}

func (h *Handler) replaceTemplates(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid country id"))
		return
	}

	var req struct {
		Templates []templateRequest `json:"templates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	candidates := make([]model.PlateTemplate, 0, len(req.Templates))
	for _, tpl := range req.Templates {
		active := true
		if tpl.Active != nil {
			active = *tpl.Active
		}
		candidates = append(candidates, model.PlateTemplate{
			ID:          tpl.ID,
			Pattern:     strings.ToUpper(strings.TrimSpace(tpl.Pattern)),
			DisplayName: strings.TrimSpace(tpl.DisplayName),
			Priority:    tpl.Priority,
			Active:      active,
			Description: strings.TrimSpace(tpl.Description),
		})
	}

	stored, err := h.templateService.ReplaceTemplates(c.Request.Context(), principal, id, candidates)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(stored))
}

func (h *Handler) validateTemplate(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Pattern string `json:"pattern"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	pattern := strings.ToUpper(strings.TrimSpace(req.Pattern))
	c.JSON(http.StatusOK, successResponse(gin.H{
		"validation":  validation.ValidatePattern(pattern),
		"suggestions": validation.Suggest(pattern),
	}))
}

func (h *Handler) getConfigurationStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	status, err := h.statusService.GetConfigurationStatus(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(status))
}

func (h *Handler) matchPlate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		CountryID string `json:"country_id" binding:"required"`
		Text      string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.matchService.MatchPlate(c.Request.Context(), principal, strings.TrimSpace(req.CountryID), req.Text)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) matchRecentDetections(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	since := time.Now().Add(-15 * time.Minute)
	if raw := c.Query("since"); raw != "" {
		parsed, err := parseTime(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid since"))
			return
		}
		since = parsed
	}

	cameraID := strings.TrimSpace(c.Query("camera_id"))

	matches, err := h.matchService.MatchRecentDetections(c.Request.Context(), principal, since, cameraID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(matches))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var setErr *service.SetValidationError
	if errors.As(err, &setErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    setErr.Error(),
			"errors":   setErr.Result.Errors,
			"warnings": setErr.Result.Warnings,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrCountryNotConfigurable):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid time format")
}
