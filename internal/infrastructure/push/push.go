// Package push delivers notification payloads to device tokens.
package push

import (
	"context"
	"errors"
)

// ErrUnregistered means the provider no longer knows the token; callers
// should forget it.
var ErrUnregistered = errors.New("push: device token unregistered")

type Message struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}
