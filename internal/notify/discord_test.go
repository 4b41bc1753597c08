package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiscordWebhook_Post(t *testing.T) {
	var payload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	hook := NewDiscordWebhook(server.URL)
	message := ":rotating_light: swe-grep benchmark regression detected"

	if err := hook.Post(context.Background(), message); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	if payload["content"] != message {
		t.Errorf("expected content %q, got %q", message, payload["content"])
	}
	if payload["username"] != "swegrep-bench" {
		t.Errorf("expected username swegrep-bench, got %q", payload["username"])
	}
}

func TestDiscordWebhook_Post_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	hook := NewDiscordWebhook(server.URL)

	if err := hook.Post(context.Background(), "test"); err == nil {
		t.Error("expected error for non-2xx status code, got nil")
	}
}

func TestDiscordWebhook_Post_MissingURL(t *testing.T) {
	hook := NewDiscordWebhook("")

	if err := hook.Post(context.Background(), "test"); err == nil {
		t.Error("expected error for missing webhook URL, got nil")
	}
}

func TestDiscordWebhook_Post_NilClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	hook := &DiscordWebhook{URL: server.URL}

	if err := hook.Post(context.Background(), "test"); err != nil {
		t.Fatalf("Post with default client failed: %v", err)
	}
}
