package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plushdex/backend/internal/model"
	"github.com/plushdex/backend/internal/service"
)

type PlushHandler struct {
	svc *service.CatalogService
}

func NewPlushHandler(svc *service.CatalogService) *PlushHandler {
	return &PlushHandler{svc: svc}
}

// ListAll godoc
// @Summary List every plush
// @Tags plushies
// @Produce json
// @Success 200 {array} model.Plush
// @Failure 500 {object} model.ErrorResponse
// @Router /plushies/all [get]
func (h *PlushHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get one plush by id
// @Tags plushies
// @Produce json
// @Param id path int true "Plush ID"
// @Success 200 {object} model.Plush
// @Failure 404 {object} model.ErrorResponse
// @Router /plushies/{id} [get]
func (h *PlushHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeValidationError(c, "plush id must be an integer")
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Detail: "Plush not found!"})
			return
		}
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create godoc
// @Summary Add a plush to the catalog
// @Tags plushies
// @Accept json
// @Produce json
// @Param request body model.CreatePlushRequest true "Plush fields"
// @Success 200 {object} model.Plush
// @Failure 422 {object} model.ErrorResponse
// @Router /plushies/ [post]
func (h *PlushHandler) Create(c *gin.Context) {
	var req model.CreatePlushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// ListPage godoc
// @Summary List a page of plushies
// @Tags plushies
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} model.Plush
// @Router /plushies/ [get]
func (h *PlushHandler) ListPage(c *gin.Context) {
	var q struct {
		Skip  int `form:"skip,default=0"`
		Limit int `form:"limit,default=10"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		writeValidationError(c, err.Error())
		return
	}

	list, err := h.svc.ListPage(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Search godoc
// @Summary Substring search across character, variation and set
// @Tags plushies
// @Produce json
// @Param q query string false "Matches any of the three text fields"
// @Param character query string false "Substring filter on character"
// @Param variation query string false "Substring filter on variation"
// @Param set query string false "Substring filter on set"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} model.PageEnvelope
// @Router /search/ [get]
func (h *PlushHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeValidationError(c, err.Error())
		return
	}

	env, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// Filter godoc
// @Summary Exact-match filtering with inclusive year bounds
// @Tags plushies
// @Produce json
// @Param characters query []string false "Exact character values"
// @Param variations query []string false "Exact variation values"
// @Param sets query []string false "Exact set values"
// @Param min_year query int false "Inclusive lower release-year bound"
// @Param max_year query int false "Inclusive upper release-year bound"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} model.FilterResponse
// @Router /filter/ [get]
func (h *PlushHandler) Filter(c *gin.Context) {
	var req model.FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeValidationError(c, err.Error())
		return
	}

	res, err := h.svc.Filter(c.Request.Context(), req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func writeValidationError(c *gin.Context, detail string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"detail":  detail,
		"message": "Request validation failed",
	})
}

func writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrConflict) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Database integrity error",
			"detail":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "Database error",
		"detail":  err.Error(),
	})
}
