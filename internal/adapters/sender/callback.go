package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"trackerbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Callback delivers deferred responses to the one-time response URL that
// arrived with a slash command.
type Callback struct {
	client *http.Client
}

func NewCallback() *Callback {
	return &Callback{client: &http.Client{}}
}

type callbackRequest struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

func (c *Callback) Send(ctx context.Context, request *domain.Request, text string) error {
	if request.ResponseURL == "" {
		return errors.New("missing response URL")
	}

	payload := callbackRequest{
		ResponseType: "in_channel",
		Text:         text,
	}

	payloadBuf := new(bytes.Buffer)
	if err := json.NewEncoder(payloadBuf).Encode(payload); err != nil {
		return fmt.Errorf("error encoding callback request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, request.ResponseURL, payloadBuf)
	if err != nil {
		return fmt.Errorf("error creating callback request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error posting callback: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("callback returned status %s", res.Status)
	}

	log.Debug().Str("channel", request.Channel).Msg("callback response sent")
	return nil
}
