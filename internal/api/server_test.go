package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tex2html "github.com/alnah/go-tex2html"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(tex2html.NewCompiler(), log)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestCompileEndpoint(t *testing.T) {
	t.Parallel()

	body := `{
		"entry": "main.tex",
		"files": {
			"main.tex": "\\documentclass{article}\\begin{document}\\section{Intro}hi\\end{document}"
		},
		"assets": {"dot.png": "AQ=="}
	}`

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(body))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result tex2html.CompileResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(result.HTML, `<h2 class="tex-section">1 Intro</h2>`) {
		t.Errorf("rendered output missing heading:\n%s", result.HTML)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Severity != tex2html.SeverityInfo {
		t.Errorf("diagnostics = %+v", result.Diagnostics)
	}
}

func TestCompileEndpointFatalStillOK(t *testing.T) {
	t.Parallel()

	// A snapshot without any entry file is a compile-level failure, not an
	// HTTP-level one: the response is 200 with the diagnostic log.
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(`{"files":{}}`))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var result tex2html.CompileResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !result.HasFatal() {
		t.Errorf("expected fatal diagnostic, got %+v", result.Diagnostics)
	}
}

func TestCompileEndpointBadBase64(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	body := `{"files":{"main.tex":"x"},"assets":{"logo.png":"not base64!!!"}}`
	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(body))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "logo.png") {
		t.Errorf("error should name the bad asset: %s", rec.Body.String())
	}
}

func TestCompileEndpointInvalidJSON(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader("{nope"))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCompileEndpointMethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compile", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
