package index

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	chatcore "github.com/sushrutsadana/SalesChatAgent/internal/chat"
	"github.com/sushrutsadana/SalesChatAgent/internal/errors"
	"github.com/sushrutsadana/SalesChatAgent/internal/logger"
)

type Reloader interface {
	Reload(ctx context.Context) (int, error)
}

// ReloadHandler godoc
// @Summary Reload the product index
// @Description Drops the cached index and loads the latest persisted one
// @Tags index
// @Produce json
// @Success 200 {object} ReloadResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/index/reload [post]
// @Security AdminToken
func ReloadHandler(svc Reloader) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.Reload(c.Request.Context())
		if err != nil {
			if stderrors.Is(err, chatcore.ErrServiceUnavailable) {
				errors.ServiceUnavailable(c, "product index is not ready", err)
				return
			}

			errors.InternalError(c, "failed to reload index", err)
			return
		}

		logger.FromContext(c.Request.Context()).Info("product index reloaded", "documents", n)

		c.JSON(http.StatusOK, ReloadResponse{Status: "reloaded", Documents: n})
	}
}
