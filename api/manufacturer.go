package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxiservice/service"
)

const manufacturersPath = "/manufacturers/"

func (h *Handler) ListManufacturers(c *gin.Context) {
	res, err := h.services.Manufacturer().List(c.Request.Context(), listQuery(c))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listContext("manufacturer_list", res))
}

func (h *Handler) GetManufacturer(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	m, err := h.services.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manufacturer": m})
}

func (h *Handler) CreateManufacturer(c *gin.Context) {
	var in service.ManufacturerInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	if _, err := h.services.Manufacturer().Create(c.Request.Context(), in); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, manufacturersPath)
}

func (h *Handler) UpdateManufacturer(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	var in service.ManufacturerInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	if _, err := h.services.Manufacturer().Update(c.Request.Context(), id, in); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, manufacturersPath)
}

func (h *Handler) DeleteManufacturer(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if err := h.services.Manufacturer().Delete(c.Request.Context(), id); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, manufacturersPath)
}
