package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"crypto-dashboard/layout"
	"crypto-dashboard/middleware"
)

func (h *Handler) manager(c *gin.Context) *layout.Manager {
	m := layout.NewManager(h.layouts, layout.KeyFor(middleware.UserID(c)),
		layout.WithLogger(h.requestLog(c)),
		layout.WithClock(h.now),
	)
	m.Load(c.Request.Context())
	return m
}

func layoutResponse(c *gin.Context, l layout.Layout, changed bool) {
	c.JSON(http.StatusOK, gin.H{"layout": l, "changed": changed})
}

func (h *Handler) GetLayout(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager(c).Layout())
}

func (h *Handler) GetEnabledSections(c *gin.Context) {
	sections := []layout.Section{}
	for s := range h.manager(c).EnabledSections() {
		sections = append(sections, s)
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

func (h *Handler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": layout.PresetNames()})
}

type ReorderInput struct {
	ActiveID string `json:"activeId" binding:"required"`
	OverID   string `json:"overId" binding:"required"`
}

func (h *Handler) ReorderSections(c *gin.Context) {
	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, changed := h.manager(c).Reorder(c.Request.Context(), input.ActiveID, input.OverID)
	layoutResponse(c, l, changed)
}

func (h *Handler) ToggleSection(c *gin.Context) {
	l, changed := h.manager(c).ToggleVisibility(c.Request.Context(), c.Param("id"))
	layoutResponse(c, l, changed)
}

type ResizeInput struct {
	Size layout.Size `json:"size" binding:"required"`
}

func (h *Handler) ResizeSection(c *gin.Context) {
	var input ResizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Size.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be one of full, half, quarter, three-quarters"})
		return
	}

	l, changed := h.manager(c).Resize(c.Request.Context(), c.Param("id"), input.Size)
	layoutResponse(c, l, changed)
}

func (h *Handler) ResetLayout(c *gin.Context) {
	l := h.manager(c).ResetToDefault(c.Request.Context())
	layoutResponse(c, l, true)
}

func (h *Handler) ApplyPreset(c *gin.Context) {
	name := c.Param("name")
	if !slices.Contains(layout.PresetNames(), name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown preset"})
		return
	}

	l, changed := h.manager(c).ApplyPreset(c.Request.Context(), name)
	layoutResponse(c, l, changed)
}
