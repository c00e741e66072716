package api

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Index(c *gin.Context) {
	stats, err := h.services.Stats().Fleet(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	session := sessions.Default(c)
	visits, _ := session.Get(sessionNumVisits).(int)
	visits++
	session.Set(sessionNumVisits, visits)
	if err := session.Save(); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"num_drivers":       stats.NumDrivers,
		"num_cars":          stats.NumCars,
		"num_manufacturers": stats.NumManufacturers,
		"num_visits":        visits,
	})
}
