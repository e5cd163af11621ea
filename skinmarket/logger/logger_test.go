package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler("SkinMarket", &buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written below info level: %q", buf.String())
	}

	log.With(slog.String("request_id", "abc")).Info("HTTP request processed",
		slog.String("type", "http"),
		slog.Int("status", 201),
		slog.String("path", "/skins"))

	line := buf.String()
	for _, want := range []string{"[SkinMarket]", "INFO", "[" + colorBlue + "HTTP", "[Status: 201]", "request_id", "/skins"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q does not contain %q", line, want)
		}
	}
	if strings.Contains(line, "type"+colorWhite+"=") {
		t.Errorf("internal attr rendered: %q", line)
	}
}

func TestCustomHandler_ErrorType(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler("SkinMarket", &buf, nil)).Error("boom")

	if !strings.Contains(buf.String(), "ERR") {
		t.Errorf("error record not tagged ERR: %q", buf.String())
	}
}
