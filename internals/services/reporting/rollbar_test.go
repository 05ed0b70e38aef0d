package reporting

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterWithoutTokenOnlyLogs(t *testing.T) {
	var buf bytes.Buffer
	r := New(log.New(&buf, "", 0), Options{Environment: "test"})

	assert.False(t, r.Enabled())
	r.Error("GET /api/a/faculties", errors.New("boom"), map[string]interface{}{"status": 500})
	r.Warn("slow job", nil)

	assert.Contains(t, buf.String(), "[ERROR] GET /api/a/faculties: boom")
	assert.Contains(t, buf.String(), "[WARN] slow job")
	r.Close()
}

func TestNilReporterIsSafe(t *testing.T) {
	var r *Reporter
	assert.False(t, r.Enabled())
	assert.NotPanics(t, func() { r.Error("x", errors.New("y"), nil) })
}
