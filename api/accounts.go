package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"taxiservice/pkg/logger"
)

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next" form:"next"`
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"next": c.Query("next")})
}

func (h *Handler) Login(c *gin.Context) {
	var in credentials
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	driver, err := h.services.Driver().Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	// another driver's session data never carries over
	session := sessions.Default(c)
	if prev, ok := session.Get(sessionDriverID).(int64); ok && prev != driver.ID {
		session.Clear()
	}
	session.Set(sessionDriverID, driver.ID)
	if err := session.Save(); err != nil {
		h.abortWithError(c, err)
		return
	}

	h.requestLog(c).Info("driver logged in", logger.Int64("driver_id", driver.ID))
	c.Redirect(http.StatusFound, safeNext(in.Next))
}

func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}

func (h *Handler) IssueToken(c *gin.Context) {
	var in credentials
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	driver, err := h.services.Driver().Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	token, expires, err := h.tokens.Issue(driver.ID, driver.Username)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": expires})
}

// safeNext only follows local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	return next
}
