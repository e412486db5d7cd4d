package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSender posts messages to an FCM legacy-style endpoint.
type HTTPSender struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

func NewHTTPSender(endpoint, serverKey string, timeout time.Duration) *HTTPSender {
	return &HTTPSender{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: timeout},
	}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmRequest struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmResponse struct {
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

func (s *HTTPSender) Send(ctx context.Context, m Message) error {
	payload, err := json.Marshal(fcmRequest{
		To:           m.Token,
		Notification: fcmNotification{Title: m.Title, Body: m.Body},
		Data:         m.Data,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push: post: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrUnregistered
	case resp.StatusCode >= 300:
		return fmt.Errorf("push: provider returned %d", resp.StatusCode)
	}

	var out fcmResponse
	if err := json.Unmarshal(body, &out); err != nil || out.Failure == 0 {
		return nil
	}
	for _, r := range out.Results {
		switch r.Error {
		case "":
		case "NotRegistered", "InvalidRegistration":
			return ErrUnregistered
		default:
			return fmt.Errorf("push: provider error %s", r.Error)
		}
	}
	return nil
}
