package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"animebuddy/internal/anime"
	"animebuddy/internal/services"
)

type stubAssistant struct {
	answer   string
	err      error
	question string
	reqID    string
}

func (s *stubAssistant) HandleUserQuestion(ctx context.Context, question string) (string, error) {
	s.question = question
	s.reqID, _ = services.RequestIDFromContext(ctx)
	return s.answer, s.err
}

type stubBrowser struct {
	page    anime.Page
	pageErr error
	record  anime.Record
	recErr  error
	gotPage int
}

func (s *stubBrowser) TopPage(_ context.Context, page int) (anime.Page, error) {
	s.gotPage = page
	return s.page, s.pageErr
}

func (s *stubBrowser) FetchFull(_ context.Context, id int) (anime.Record, error) {
	if s.recErr != nil {
		return anime.Record{}, s.recErr
	}
	rec := s.record
	rec.ID = id
	return rec, nil
}

func newTestServer(assistant Assistant, browser Browser) *Server {
	return NewServer(assistant, browser, Options{Gatherer: prometheus.NewRegistry()})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("decode body: %v (%q)", err, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubAssistant{}, &stubBrowser{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestAsk(t *testing.T) {
	assistant := &stubAssistant{answer: "Bleach is about soul reapers."}
	srv := newTestServer(assistant, &stubBrowser{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"  Tell me about Bleach "}`))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body askResponse
	decodeBody(t, rec, &body)
	if body.Answer != "Bleach is about soul reapers." {
		t.Fatalf("unexpected answer %q", body.Answer)
	}
	if assistant.question != "Tell me about Bleach" {
		t.Fatalf("expected trimmed question, got %q", assistant.question)
	}
	if assistant.reqID == "" {
		t.Fatal("expected request id to reach the assistant")
	}
}

func TestAskValidation(t *testing.T) {
	srv := newTestServer(&stubAssistant{}, &stubBrowser{})
	for _, body := range []string{`{"question":"   "}`, `{}`, `not json`} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAskFailureMapsToBadGateway(t *testing.T) {
	assistant := &stubAssistant{err: services.Wrap(services.ErrMalformedResponse, "llm", "decode", "", nil)}
	srv := newTestServer(assistant, &stubBrowser{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"hi"}`)))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var body errorResponse
	decodeBody(t, rec, &body)
	if !strings.Contains(body.Error, "malformed response") {
		t.Fatalf("unexpected error body %q", body.Error)
	}
}

func TestTopPage(t *testing.T) {
	browser := &stubBrowser{page: anime.Page{
		Records:         []anime.Record{{ID: 1, Title: "Cowboy Bebop"}},
		CurrentPage:     3,
		LastVisiblePage: 10,
		HasNextPage:     true,
	}}
	srv := newTestServer(&stubAssistant{}, browser)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/anime/top?page=3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page anime.Page
	decodeBody(t, rec, &page)
	if browser.gotPage != 3 || page.CurrentPage != 3 || !page.HasNextPage || len(page.Records) != 1 {
		t.Fatalf("unexpected page %+v (requested %d)", page, browser.gotPage)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/anime/top", nil))
	if browser.gotPage != 1 {
		t.Fatalf("expected default page 1, got %d", browser.gotPage)
	}

	for _, raw := range []string{"0", "-2", "two"} {
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/anime/top?page="+raw, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("page %q: expected 400, got %d", raw, rec.Code)
		}
	}
}

func TestGetAnimeStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "ok", path: "/api/v1/anime/1", status: http.StatusOK},
		{name: "bad id", path: "/api/v1/anime/abc", status: http.StatusBadRequest},
		{name: "not found", path: "/api/v1/anime/99", err: &services.HTTPStatusError{Service: "jikan", StatusCode: 404}, status: http.StatusNotFound},
		{name: "upstream", path: "/api/v1/anime/5", err: services.Wrap(services.ErrNetwork, "jikan", "fetch full", "", errors.New("reset")), status: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser := &stubBrowser{record: anime.Record{Title: "Cowboy Bebop"}, recErr: tt.err}
			srv := newTestServer(&stubAssistant{}, browser)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "animebuddy_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := NewServer(&stubAssistant{}, &stubBrowser{}, Options{Gatherer: reg})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "animebuddy_test_total 1") {
		t.Fatalf("expected counter in exposition, got %s", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := NewServer(&stubAssistant{}, &stubBrowser{}, Options{
		Gatherer:           prometheus.NewRegistry(),
		CORSAllowedOrigins: []string{"https://app.example"},
	})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ask", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := newTestServer(&stubAssistant{}, &stubBrowser{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
