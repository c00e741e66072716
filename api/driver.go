package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxiservice/service"
)

const driversPath = "/drivers/"

type licenseInput struct {
	LicenseNumber string `json:"license_number" form:"license_number"`
}

func (h *Handler) ListDrivers(c *gin.Context) {
	res, err := h.services.Driver().List(c.Request.Context(), listQuery(c))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listContext("driver_list", res))
}

func (h *Handler) GetDriver(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	driver, err := h.services.Driver().GetWithCars(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (h *Handler) CreateDriver(c *gin.Context) {
	var in service.DriverInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	if _, err := h.services.Driver().Create(c.Request.Context(), in); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, driversPath)
}

func (h *Handler) UpdateDriverLicense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	var in licenseInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	if _, err := h.services.Driver().UpdateLicense(c.Request.Context(), id, in.LicenseNumber); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s%d/", driversPath, id))
}

func (h *Handler) DeleteDriver(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if err := h.services.Driver().Delete(c.Request.Context(), id); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, driversPath)
}
