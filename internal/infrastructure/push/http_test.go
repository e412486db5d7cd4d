package push

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPSender_Send(t *testing.T) {
	var got fcmRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":1,"failure":0,"results":[{"message_id":"1"}]}`))
	}))
	defer srv.Close()

	s := NewHTTPSender(srv.URL, "k1", time.Second)
	err := s.Send(context.Background(), Message{
		Token: "tok", Title: "Payment received", Body: "50000 MMK",
		Data: map[string]string{"type": "payment_received"},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if auth != "key=k1" {
		t.Fatalf("Authorization = %q", auth)
	}
	if got.To != "tok" || got.Notification.Title != "Payment received" || got.Data["type"] != "payment_received" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestHTTPSender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		anyErr  bool
	}{
		{"gone", http.StatusGone, "", ErrUnregistered, true},
		{"not found", http.StatusNotFound, "", ErrUnregistered, true},
		{"not registered result", http.StatusOK, `{"failure":1,"results":[{"error":"NotRegistered"}]}`, ErrUnregistered, true},
		{"provider error", http.StatusOK, `{"failure":1,"results":[{"error":"Unavailable"}]}`, nil, true},
		{"server error", http.StatusInternalServerError, "", nil, true},
		{"unparseable ok body", http.StatusOK, "not json", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewHTTPSender(srv.URL, "k", time.Second).Send(context.Background(), Message{Token: "t"})
			if tt.anyErr != (err != nil) {
				t.Fatalf("err = %v, want error=%v", err, tt.anyErr)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPSender_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	if err := NewHTTPSender(srv.URL, "k", 20*time.Millisecond).Send(context.Background(), Message{Token: "t"}); err == nil {
		t.Fatalf("expected timeout error")
	}
}
