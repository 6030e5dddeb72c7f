package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestStatusNoToken(t *testing.T) {
	isolate(t)
	t.Setenv("SD_SERVER_URL", "http://localhost:9999")

	var buf bytes.Buffer
	if err := runStatus(context.Background(), &buf); err != nil {
		t.Fatalf("status with no token: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Server:   http://localhost:9999") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "not configured") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusShortToken(t *testing.T) {
	isolate(t)
	t.Setenv("SD_TOKEN", "ab")
	t.Setenv("SD_SERVER_URL", "http://127.0.0.1:1")

	var buf bytes.Buffer
	if err := runStatus(context.Background(), &buf); err != nil {
		t.Fatalf("status with short token: %v", err)
	}
	if !strings.Contains(buf.String(), "cannot reach server") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestStatusWithServer(t *testing.T) {
	isolate(t)
	_, srv := newFakeAPI(t)
	t.Setenv("SD_TOKEN", "goodtoken")
	t.Setenv("SD_SERVER_URL", srv.URL)

	var buf bytes.Buffer
	if err := runStatus(context.Background(), &buf); err != nil {
		t.Fatalf("status: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Token:    goodtoke…") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "connected as Ada Lovelace") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusWithInvalidToken(t *testing.T) {
	isolate(t)
	_, srv := newFakeAPI(t)
	t.Setenv("SD_TOKEN", "badtoken1234567890")
	t.Setenv("SD_SERVER_URL", srv.URL)

	var buf bytes.Buffer
	if err := runStatus(context.Background(), &buf); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(buf.String(), "invalid or expired token") {
		t.Errorf("output = %q", buf.String())
	}
}
