package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.LPush(ctx, "push:outbox", "m").Err(); err != nil {
		t.Fatalf("LPUSH err: %v", err)
	}
	s.Select(2)
	if got, _ := s.List("push:outbox"); len(got) != 1 {
		t.Fatalf("value not written to db 2: %v", got)
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	_, err := OpenRedis("127.0.0.1:1", 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "redis ping 127.0.0.1:1") {
		t.Fatalf("error lacks address: %v", err)
	}
}

func TestNewClient_ConnectsLazily(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	c := NewClient(addr, 0)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err == nil {
		t.Fatal("expected ping to fail while redis is down")
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("restart miniredis: %v", err)
	}
	if err := c.Ping(ctx).Err(); err != nil {
		t.Fatalf("client did not reconnect: %v", err)
	}
}
