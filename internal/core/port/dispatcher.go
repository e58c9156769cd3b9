package port

import (
	"context"
	"trackerbot/internal/core/domain"
)

type Dispatcher interface {
	// Dispatch runs the authorize/parse/execute/deliver pipeline for a verified request.
	Dispatch(ctx context.Context, request *domain.Request, sender ResponseSender) domain.Outcome
	// DispatchAsync runs Dispatch in the background so the webhook caller can be acknowledged first.
	DispatchAsync(request *domain.Request, sender ResponseSender)
}
