package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "saleschat"
	version     = "1.0.0"
)

// reports whether a product index is cached and its size
type StatusReporter interface {
	Status() (bool, int)
}

// Handler godoc
// @Summary Health check
// @Description Returns service health and whether the product index is loaded
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(status StatusReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
		}

		if status != nil {
			resp.IndexReady, resp.Documents = status.Status()
		}

		c.JSON(http.StatusOK, resp)
	}
}

// PingHandler godoc
// @Summary Ping
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /api/v1/ping [get]
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
