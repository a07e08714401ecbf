package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wesleyorama2/relay/metrics"
	"github.com/wesleyorama2/relay/task"
)

func TestClient_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected method GET, got %s", r.Method)
		}
		if r.Header.Get("X-Test-Header") != "test-value" {
			t.Errorf("Expected header X-Test-Header: test-value, got %s", r.Header.Get("X-Test-Header"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"success"}`))
	}))
	defer server.Close()

	client := NewClient()

	var h Header
	h.Set("X-Test-Header", "test-value")
	req := NewRequest(Options{Headers: h}, server.URL+"/test", EmptyBody())

	resp, err := client.Send(req).Run(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	m := resp.Message()
	if m.StatusCode != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, m.StatusCode)
	}
	if m.StatusMessage != "OK" {
		t.Errorf("Expected status message OK, got %q", m.StatusMessage)
	}
	if m.Headers.Get("content-type") != "application/json" {
		t.Errorf("Expected lower-cased content-type header, got %q", m.Headers.Get("content-type"))
	}
	if resp.Request() != req {
		t.Error("response must carry the request that produced it")
	}

	body, err := m.BufferText().Run(context.Background())
	if err != nil {
		t.Fatalf("Error reading response body: %v", err)
	}
	if body != `{"message":"success"}` {
		t.Errorf("Expected body, got %s", body)
	}
}

func TestClient_SendUnsupportedScheme(t *testing.T) {
	client := NewClient()
	req := NewRequest(Options{}, "ftp://example.com/file", EmptyBody())

	_, err := client.Send(req).Run(context.Background())
	if err == nil {
		t.Fatal("expected an error for an unsupported scheme")
	}
	if err.Error() != "Unsupported protocol 'ftp'" {
		t.Errorf("expected Unsupported protocol 'ftp', got %q", err.Error())
	}
}

func TestClient_SendUnreachableHostVerbatimError(t *testing.T) {
	client := NewClient()
	// Port 1 is virtually never listening.
	req := NewRequest(Options{}, "http://127.0.0.1:1/", EmptyBody())

	_, err := client.Send(req).Run(context.Background())
	if err == nil {
		t.Fatal("expected a connection error")
	}
	if strings.Contains(err.Error(), "After redirect") {
		t.Errorf("transport errors must surface unwrapped, got %q", err.Error())
	}
}

func TestClient_SendPostBody(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, _ := io.ReadAll(r.Body)
		received = string(content)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient()
	req := NewRequest(Options{Method: "POST"}, server.URL, BodyString("test"))

	resp, err := client.Send(req).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message().StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.Message().StatusCode)
	}
	if received != "test" {
		t.Errorf("expected body test, got %q", received)
	}
}

func TestClient_SendIsRepeatable(t *testing.T) {
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(content))
	}))
	defer server.Close()

	client := NewClient()
	req := NewRequest(Options{Method: "POST"}, server.URL, BodyString("again"))
	send := client.Send(req)

	for i := 0; i < 2; i++ {
		if _, err := send.Run(context.Background()); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}

	if len(bodies) != 2 || bodies[0] != "again" || bodies[1] != "again" {
		t.Errorf("expected the body re-produced per send, got %v", bodies)
	}
}

func TestClient_SendCancelAbortsConnection(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient()
	req := NewRequest(Options{}, server.URL, EmptyBody())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := client.Send(req).Run(ctx)
	if !task.IsCanceled(err) {
		t.Errorf("expected a cancellation, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("cancellation should abort the in-flight connection promptly")
	}
}

func TestClient_SendRecordsMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	recorder := metrics.NewRecorder()
	client := NewClient(WithRecorder(recorder))
	req := NewRequest(Options{}, server.URL, EmptyBody())

	if _, err := client.Send(req).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := recorder.Summary()
	if summary.Count != 1 || summary.Failures != 0 {
		t.Errorf("expected one successful observation, got %+v", summary)
	}
}

func TestClient_SendCapturesTiming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := NewClient()
	req := NewRequest(Options{}, server.URL, EmptyBody())

	resp, err := client.Send(req).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Timing().TotalTime <= 0 {
		t.Error("expected a positive total time")
	}
}
