package api

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"taxiservice/config"
	"taxiservice/pkg/auth"
	"taxiservice/pkg/logger"
	"taxiservice/service"
)

const sessionName = "taxiservice_session"

type Handler struct {
	services service.IServiceManager
	tokens   *auth.TokenIssuer
	log      logger.ILogger
}

// New builds the HTTP router. Everything except the account endpoints and
// the health check sits behind the login gate.
func New(cfg config.Config, services service.IServiceManager, log logger.ILogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	h := &Handler{
		services: services,
		tokens:   auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.ServiceName),
		log:      log,
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accounts := r.Group("/accounts")
	{
		accounts.GET("/login/", h.LoginPage)
		accounts.POST("/login/", h.Login)
		accounts.POST("/logout/", h.Logout)
	}
	r.POST("/api/token/", h.IssueToken)

	gated := r.Group("/", h.authRequired)
	{
		gated.GET("/", h.Index)

		gated.GET("/manufacturers/", h.ListManufacturers)
		gated.GET("/manufacturers/:id/", h.GetManufacturer)
		gated.POST("/manufacturers/create/", h.CreateManufacturer)
		gated.POST("/manufacturers/:id/update/", h.UpdateManufacturer)
		gated.POST("/manufacturers/:id/delete/", h.DeleteManufacturer)

		gated.GET("/cars/", h.ListCars)
		gated.GET("/cars/:id/", h.GetCar)
		gated.POST("/cars/create/", h.CreateCar)
		gated.POST("/cars/:id/update/", h.UpdateCar)
		gated.POST("/cars/:id/delete/", h.DeleteCar)
		gated.GET("/cars/:id/toggle-assign/", h.ToggleAssign)

		gated.GET("/drivers/", h.ListDrivers)
		gated.GET("/drivers/:id/", h.GetDriver)
		gated.POST("/drivers/create/", h.CreateDriver)
		gated.POST("/drivers/:id/update/", h.UpdateDriverLicense)
		gated.POST("/drivers/:id/delete/", h.DeleteDriver)
	}

	return r
}
