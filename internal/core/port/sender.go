package port

import (
	"context"
	"trackerbot/internal/core/domain"
)

type ResponseSender interface {
	// Send delivers the response text to the surface the request originated from.
	Send(ctx context.Context, request *domain.Request, text string) error
}
