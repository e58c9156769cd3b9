package service

import (
	"context"
	"fmt"
	"time"

	"trackerbot/internal/core/domain"
	"trackerbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	notEnabledNotice    = "Commands are not enabled in this channel."
	notRecognizedNotice = "Command not recognized."
	queryFailedNotice   = "Could not run %q: %s"
)

// Dispatcher routes a verified request through authorization, command
// parsing and registry lookup, then executes the query and delivers the
// formatted result. All configuration it reads is immutable after startup,
// so concurrent dispatches share no mutable state.
type Dispatcher struct {
	registry     *domain.Registry
	executor     port.QueryExecutor
	authorizer   Authorizer
	queryTimeout time.Duration
}

func NewDispatcher(registry *domain.Registry, executor port.QueryExecutor, authorizer Authorizer,
	queryTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		registry:     registry,
		executor:     executor,
		authorizer:   authorizer,
		queryTimeout: queryTimeout,
	}
}

// DispatchAsync runs Dispatch in the background. The webhook caller enforces
// a short response timeout, so the HTTP handler acknowledges first and the
// substantive answer is delivered through the sender afterwards.
func (d *Dispatcher) DispatchAsync(request *domain.Request, sender port.ResponseSender) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("recovered from panic during dispatch")
			}
		}()

		d.Dispatch(context.Background(), request, sender)
	}()
}

func (d *Dispatcher) Dispatch(ctx context.Context, request *domain.Request, sender port.ResponseSender) domain.Outcome {
	id, _ := uuid.NewV4()
	l := log.With().
		Str("dispatchId", id.String()).
		Str("surface", string(request.Surface)).
		Str("channel", request.Channel).
		Logger()

	if !d.authorizer.IsAllowed(request.Channel) {
		l.Warn().Msg("channel not allow-listed")

		// The slash caller is waiting for some reply and would otherwise
		// appear to hang; the event surface drops silently.
		if request.Surface == domain.SurfaceSlash {
			d.deliver(ctx, &l, request, sender, notEnabledNotice)
		}

		return domain.OutcomeUnauthorized
	}

	token, ok := d.parseToken(request)
	if !ok {
		l.Debug().Msg("no command in message")
		return domain.OutcomeNoCommand
	}

	definition, err := d.registry.Get(token)
	if err != nil {
		l.Debug().Str("token", token).Msg("unknown command")
		d.deliver(ctx, &l, request, sender, notRecognizedNotice+"\n\n"+d.registry.HelpText())
		return domain.OutcomeUnknownCommand
	}

	l.Info().Str("token", token).Msg("handling command")

	if definition.Kind == domain.KindHelp {
		if !d.deliver(ctx, &l, request, sender, d.registry.HelpText()) {
			return domain.OutcomeDeliveryFailed
		}
		return domain.OutcomeResponded
	}

	queryCtx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	result, err := d.executor.Search(queryCtx, definition.Query)
	if err != nil {
		l.Error().Err(err).Str("token", token).Msg("query execution failed")
		d.deliver(ctx, &l, request, sender, fmt.Sprintf(queryFailedNotice, token, err))
		return domain.OutcomeQueryFailed
	}

	if !d.deliver(ctx, &l, request, sender, domain.FormatSearchResult(definition.Description, result)) {
		return domain.OutcomeDeliveryFailed
	}

	l.Info().Str("token", token).Int("total", result.Total).Msg("response delivered")
	return domain.OutcomeResponded
}

func (d *Dispatcher) parseToken(request *domain.Request) (string, bool) {
	if request.Surface == domain.SurfaceSlash {
		return domain.ParseSlashCommand(request.Command), true
	}

	return domain.ParseFreeText(request.Text)
}

func (d *Dispatcher) deliver(ctx context.Context, l *zerolog.Logger, request *domain.Request,
	sender port.ResponseSender, text string) bool {
	ctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	if err := sender.Send(ctx, request, domain.Truncate(text, domain.MaxResponseLength)); err != nil {
		l.Error().Err(err).Msg("failed to deliver response")
		return false
	}

	return true
}
