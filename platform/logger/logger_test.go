package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.LeadScored("tenant-1", "score-1", 82, "hot", 100, "clinic-2026-v1", false)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON record, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "lead_scored" {
		t.Fatalf("expected lead_scored message, got %v", record["msg"])
	}
	if record["total_score"] != float64(82) || record["category"] != "hot" {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestNew_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("development", &buf)

	log.Debug("probe")
	if !strings.Contains(buf.String(), "msg=probe") {
		t.Fatalf("expected text debug output, got %q", buf.String())
	}
}

func TestWithContext_AttachesIDs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-9")
	ctx = context.WithValue(ctx, TenantIDKey, "tenant-3")
	log.WithContext(ctx).Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-9"`) || !strings.Contains(out, `"tenant_id":"tenant-3"`) {
		t.Fatalf("expected ids in output, got %q", out)
	}
	if log.WithContext(context.Background()) != log {
		t.Fatalf("expected same logger when context carries nothing")
	}
}
