package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"trackerbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

// Slack posts responses as threaded replies against the triggering message.
type Slack struct {
	botToken       string
	postMessageURL string
	client         *http.Client
}

func NewSlack(botToken string) *Slack {
	return &Slack{
		botToken:       botToken,
		postMessageURL: defaultPostMessageURL,
		client:         &http.Client{},
	}
}

type postMessageRequest struct {
	Channel  string `json:"channel"`
	Text     string `json:"text"`
	ThreadTS string `json:"thread_ts,omitempty"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *Slack) Send(ctx context.Context, request *domain.Request, text string) error {
	payload := postMessageRequest{
		Channel:  request.Channel,
		Text:     text,
		ThreadTS: request.ThreadTS,
	}

	payloadBuf := new(bytes.Buffer)
	if err := json.NewEncoder(payloadBuf).Encode(payload); err != nil {
		return fmt.Errorf("error encoding message request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.postMessageURL, payloadBuf)
	if err != nil {
		return fmt.Errorf("error creating message request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+s.botToken)
	req.Header.Add("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error posting message: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("message post returned status %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("error reading message response: %w", err)
	}

	var result postMessageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("error unmarshalling message response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("message post rejected: %s", result.Error)
	}

	log.Debug().Str("channel", request.Channel).Msg("threaded reply sent")
	return nil
}
