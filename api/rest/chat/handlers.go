package chat

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	chatcore "github.com/sushrutsadana/SalesChatAgent/internal/chat"
	"github.com/sushrutsadana/SalesChatAgent/internal/errors"
	"github.com/sushrutsadana/SalesChatAgent/internal/index"
	"github.com/sushrutsadana/SalesChatAgent/internal/prompt"
)

// interface for the conversation service
type Chatter interface {
	Chat(ctx context.Context, req chatcore.Request) (*chatcore.Response, error)
}

// Handler godoc
// @Summary Chat with the sales assistant
// @Description Answers a shopper message using retrieved product pages and returns recommended products
// @Tags chat
// @Accept json
// @Produce json
// @Param request body Request true "Chat turn"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/chat [post]
func Handler(svc Chatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		history := make([]prompt.Turn, 0, len(req.History))
		for _, msg := range req.History {
			history = append(history, prompt.Turn{Role: msg.Role, Content: msg.Content})
		}

		resp, err := svc.Chat(c.Request.Context(), chatcore.Request{
			Message: req.Message,
			History: history,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		products := make([]Product, len(resp.Products))
		for i, p := range resp.Products {
			products[i] = Product{URL: p.URL, Title: p.Title, Price: p.Price}
		}

		c.JSON(http.StatusOK, Response{
			Message:  resp.Message,
			Products: products,
		})
	}
}

func respondError(c *gin.Context, err error) {
	var inputErr *chatcore.InputError

	switch {
	case stderrors.As(err, &inputErr):
		errors.BadRequest(c, inputErr.Reason, nil)
	case stderrors.Is(err, chatcore.ErrInvalidInput):
		errors.BadRequest(c, "invalid chat request", err)
	case stderrors.Is(err, chatcore.ErrServiceUnavailable), stderrors.Is(err, index.ErrIndexLoad):
		errors.ServiceUnavailable(c, "product index is not ready", err)
	default:
		errors.InternalError(c, "error processing chat", err)
	}
}
