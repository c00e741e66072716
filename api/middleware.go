package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/service"
)

const (
	headerRequestID = "X-Request-ID"

	ctxLogger = "logger"
	ctxDriver = "driver"

	sessionDriverID  = "driver_id"
	sessionNumVisits = "num_visits"

	loginPath = "/accounts/login/"
)

func requestLogger(log logger.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)

		reqLog := log.With(logger.String("request_id", id))
		c.Set(ctxLogger, reqLog)
		reqLog.Debug("request started", logger.String("method", c.Request.Method), logger.String("path", c.Request.URL.Path))

		c.Next()

		reqLog.Info("request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		)
	}
}

// authRequired resolves the current driver from a bearer token or, failing
// that, from the session. Browsers without a session go to the login page.
func (h *Handler) authRequired(c *gin.Context) {
	if header := c.GetHeader("Authorization"); header != "" {
		h.authenticateBearer(c, header)
		return
	}

	session := sessions.Default(c)
	id, ok := session.Get(sessionDriverID).(int64)
	if !ok {
		redirectToLogin(c)
		return
	}

	driver, err := h.services.Driver().Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			session.Delete(sessionDriverID)
			_ = session.Save()
			redirectToLogin(c)
			return
		}
		h.abortWithError(c, err)
		return
	}

	c.Set(ctxDriver, driver)
	c.Next()
}

func (h *Handler) authenticateBearer(c *gin.Context, header string) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
		return
	}

	id, _, err := h.tokens.Parse(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	driver, err := h.services.Driver().Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		h.abortWithError(c, err)
		return
	}

	c.Set(ctxDriver, driver)
	c.Next()
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

// requestLog returns the logger tagged with the current request id.
func (h *Handler) requestLog(c *gin.Context) logger.ILogger {
	if l, ok := c.Get(ctxLogger); ok {
		return l.(logger.ILogger)
	}
	return h.log
}

func currentDriver(c *gin.Context) *models.Driver {
	return c.MustGet(ctxDriver).(*models.Driver)
}
