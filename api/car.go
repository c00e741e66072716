package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxiservice/service"
)

const carsPath = "/cars/"

func (h *Handler) ListCars(c *gin.Context) {
	res, err := h.services.Car().List(c.Request.Context(), listQuery(c))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listContext("car_list", res))
}

func (h *Handler) GetCar(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	car, err := h.services.Car().Get(c.Request.Context(), id, currentDriver(c).ID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"car": car.Car, "is_assigned": car.IsAssigned})
}

func (h *Handler) CreateCar(c *gin.Context) {
	var in service.CarInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	if _, err := h.services.Car().Create(c.Request.Context(), in); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, carsPath)
}

func (h *Handler) UpdateCar(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	var in service.CarInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	if _, err := h.services.Car().Update(c.Request.Context(), id, in); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, carsPath)
}

func (h *Handler) DeleteCar(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if err := h.services.Car().Delete(c.Request.Context(), id); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, carsPath)
}

func (h *Handler) ToggleAssign(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if _, err := h.services.Car().ToggleAssign(c.Request.Context(), id, currentDriver(c)); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s%d/", carsPath, id))
}
