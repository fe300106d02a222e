package visioningest

import (
	"bufio"
	"strings"
	"testing"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/ringbuffer"
)

func TestReadAllLines_DecodesAndRoutesByCamera(t *testing.T) {
	lines := strings.Join([]string{
		`{"timestamp_capture":1,"camera_id":0}`,
		`{"timestamp_capture":2,"camera_id":1}`,
	}, "\n")

	buffers := []*ringbuffer.Ring[model.RawVisionData]{
		ringbuffer.New[model.RawVisionData](),
		ringbuffer.New[model.RawVisionData](),
	}

	if err := ReadAllLines(bufio.NewScanner(strings.NewReader(lines)), buffers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f0, ok := buffers[0].Poll()
	if !ok || f0.TimestampCapture != 1 {
		t.Fatalf("expected camera 0 buffer to hold frame at t=1, got %+v ok=%v", f0, ok)
	}
	f1, ok := buffers[1].Poll()
	if !ok || f1.TimestampCapture != 2 {
		t.Fatalf("expected camera 1 buffer to hold frame at t=2, got %+v ok=%v", f1, ok)
	}
}

func TestReadAllLines_MalformedLineReturnsError(t *testing.T) {
	buffers := []*ringbuffer.Ring[model.RawVisionData]{ringbuffer.New[model.RawVisionData]()}
	err := ReadAllLines(bufio.NewScanner(strings.NewReader("not json")), buffers)
	if err == nil {
		t.Fatal("expected an error for a malformed line")
	}
}

func TestNewUDPSource_RejectsEmptyBuffers(t *testing.T) {
	_, err := NewUDPSource(":0", nil, nil)
	if err == nil {
		t.Fatal("expected an error when no ring buffers are supplied")
	}
}
