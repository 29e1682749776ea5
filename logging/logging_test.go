package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "2026-W43"},
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
		{time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), "2026-W01"},
	}

	for _, tt := range tests {
		if got := weekKey(tt.date); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestRotatingWriterWritesCurrentWeek(t *testing.T) {
	dir := t.TempDir()

	w, err := NewRotatingWriter(dir, 1, 0)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, fileName(weekKey(time.Now()), 0)))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if string(content) != "hello\n" {
		t.Errorf("Expected hello, got %q", content)
	}
}

func TestRotatingWriterRotatesOnWeekChange(t *testing.T) {
	dir := t.TempDir()

	w, err := NewRotatingWriter(dir, 1, 0)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	next := time.Now().Add(8 * 24 * time.Hour)
	w.mu.Lock()
	w.now = func() time.Time { return next }
	w.mu.Unlock()

	if _, err := w.Write([]byte("next week\n")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, fileName(weekKey(next), 0))); err != nil {
		t.Errorf("Expected a file for the next week: %v", err)
	}
}

func TestRotatingWriterRotatesOnSize(t *testing.T) {
	dir := t.TempDir()

	w, err := NewRotatingWriter(dir, 1, 10)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	for range 3 {
		if _, err := w.Write([]byte("12345678\n")); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
	}

	week := weekKey(time.Now())
	for seq := range 3 {
		content, err := os.ReadFile(filepath.Join(dir, fileName(week, seq)))
		if err != nil {
			t.Fatalf("Expected file %s: %v", fileName(week, seq), err)
		}
		if string(content) != "12345678\n" {
			t.Errorf("Expected one line in %s, got %q", fileName(week, seq), content)
		}
	}
}

func TestRotatingWriterResumesFullFile(t *testing.T) {
	dir := t.TempDir()
	week := weekKey(time.Now())

	if err := os.WriteFile(filepath.Join(dir, fileName(week, 0)), bytes.Repeat([]byte("x"), 20), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewRotatingWriter(dir, 1, 10)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	if w.seq != 1 {
		t.Errorf("Expected to continue in sequence 1, got %d", w.seq)
	}
}

func TestRotatingWriterCleanup(t *testing.T) {
	dir := t.TempDir()

	w, err := NewRotatingWriter(dir, 1, 0)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	old := filepath.Join(dir, "ceassist-2020-W01.log")
	unrelated := filepath.Join(dir, "other.log")
	for _, p := range []string{old, unrelated} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		past := time.Now().Add(-30 * 24 * time.Hour)
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := w.Cleanup()
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removed file, got %d", removed)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Error("Expected unrelated file to be kept")
	}
}

func TestRotatingWriterConcurrentWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := NewRotatingWriter(dir, 1, 0)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				w.Write([]byte("line\n"))
			}
		}()
	}
	wg.Wait()
	w.Close()

	content, err := os.ReadFile(filepath.Join(dir, fileName(weekKey(time.Now()), 0)))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(content), "\n"); lines != 500 {
		t.Errorf("Expected 500 lines, got %d", lines)
	}
}

func TestRotatingWriterCloseTwice(t *testing.T) {
	w, err := NewRotatingWriter(t.TempDir(), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Unexpected error on second close: %v", err)
	}
	if _, err := w.Write([]byte("x")); err == nil {
		t.Error("Expected write after close to fail")
	}
}

func TestInitWritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	if err := Init(Options{Dir: dir, Level: "warn", RetentionWeeks: 1, Console: &console}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer InitLogger("")

	Debug("debug line")
	Warn("warn line", "key", "value")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if strings.Contains(console.String(), "debug line") {
		t.Error("Expected console to drop debug records at warn level")
	}
	if !strings.Contains(console.String(), "warn line") {
		t.Error("Expected console to carry the warn record")
	}

	content, err := os.ReadFile(filepath.Join(dir, fileName(weekKey(time.Now()), 0)))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 JSON lines in the file, got %d", len(lines))
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &record); err != nil {
		t.Fatalf("Expected JSON line: %v", err)
	}
	if record["msg"] != "warn line" || record["key"] != "value" {
		t.Errorf("Unexpected record: %v", record)
	}
}

func TestPackageFunctionsBeforeInit(t *testing.T) {
	saved := DefaultLoggingService
	DefaultLoggingService = nil
	defer func() { DefaultLoggingService = saved }()

	Info("no logger yet")
	Error("no logger yet")
}

func TestLoggingMiddleware(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Write([]byte("ok"))
		}
	}))

	testCases := []struct {
		path      string
		wantLog   bool
		wantLevel string
		wantCode  float64
	}{
		{"/health", false, "", 0},
		{"/metrics", false, "", 0},
		{"/products?maker=x", true, "INFO", 200},
		{"/missing", true, "WARN", 404},
		{"/boom", true, "ERROR", 500},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			out.Reset()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-1"))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if !tc.wantLog {
				if out.Len() != 0 {
					t.Errorf("Expected no log for %s, got %s", tc.path, out.String())
				}
				return
			}

			var record map[string]any
			if err := json.Unmarshal(out.Bytes(), &record); err != nil {
				t.Fatalf("Expected one JSON record, got %q", out.String())
			}
			if record["level"] != tc.wantLevel {
				t.Errorf("Expected level %s, got %v", tc.wantLevel, record["level"])
			}
			if record["status_code"] != tc.wantCode {
				t.Errorf("Expected status %v, got %v", tc.wantCode, record["status_code"])
			}
			if record["request_id"] != "req-1" {
				t.Errorf("Expected request id req-1, got %v", record["request_id"])
			}
		})
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With("component", "test").WithGroup("g")

	logger.Info("info only")
	logger.Error("both", "k", 1)

	if !strings.Contains(a.String(), "info only") || !strings.Contains(a.String(), "both") {
		t.Errorf("Expected both records in the info handler, got %s", a.String())
	}
	if strings.Contains(b.String(), "info only") || !strings.Contains(b.String(), "component=test") {
		t.Errorf("Unexpected error handler output: %s", b.String())
	}
	if !h.Enabled(context.Background(), slog.LevelInfo) || h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected Enabled to follow the most verbose handler")
	}
}
