package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/FaizGusion00/fgadmin-sub000/internal/service"
)

// NewRouter builds the HTTP router: a public health check and the
// JWT-protected calendar API.
func NewRouter(svc *service.CalendarViewService, jwtSecret []byte, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(svc, log)

	api := r.Group("/api")
	api.Use(AuthMiddleware(jwtSecret))
	{
		api.GET("/calendar", h.GetCalendar)
		api.POST("/calendar/navigate", h.Navigate)
		api.POST("/calendar/select", h.Select)

		api.POST("/events", h.CreateEvent)
		api.PUT("/events/:id", h.UpdateEvent)
		api.DELETE("/events/:id", h.DeleteEvent)
	}

	return r
}
