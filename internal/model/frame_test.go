package model

import "testing"

func TestPresentFutureGame_HistoryCapacityFloor(t *testing.T) {
	p := NewPresentFutureGame(3)
	if p.capacity != DefaultHistoryCapacity {
		t.Fatalf("expected capacity floored to %d, got %d", DefaultHistoryCapacity, p.capacity)
	}
}

func TestPresentFutureGame_PushRotatesHistory(t *testing.T) {
	p := NewPresentFutureGame(DefaultHistoryCapacity)
	for i := 0; i < DefaultHistoryCapacity+5; i++ {
		f := NewGameFrame(float64(i), true, true)
		p.Push(f)
	}
	if p.Current.Timestamp != float64(DefaultHistoryCapacity+4) {
		t.Fatalf("expected current frame to be the latest pushed, got %v", p.Current.Timestamp)
	}
	hist := p.History()
	if len(hist) != DefaultHistoryCapacity {
		t.Fatalf("expected history capped at %d frames, got %d", DefaultHistoryCapacity, len(hist))
	}
	// Most recent historical frame should be the one just before Current.
	if hist[0].Timestamp != float64(DefaultHistoryCapacity+3) {
		t.Fatalf("expected most recent history entry to be %v, got %v", DefaultHistoryCapacity+3, hist[0].Timestamp)
	}
}

func TestPresentFutureGame_FrameBefore(t *testing.T) {
	p := NewPresentFutureGame(DefaultHistoryCapacity)
	for i := 0; i < 5; i++ {
		p.Push(NewGameFrame(float64(i), true, true))
	}
	f, ok := p.FrameBefore(3.5)
	if !ok {
		t.Fatal("expected a frame before 3.5")
	}
	if f.Timestamp != 3 {
		t.Fatalf("expected nearest-before frame at ts=3, got %v", f.Timestamp)
	}
}

func TestPresentFutureGame_FrameBefore_NoHistory(t *testing.T) {
	p := NewPresentFutureGame(DefaultHistoryCapacity)
	_, ok := p.FrameBefore(1.0)
	if ok {
		t.Fatal("expected no frame before any history exists")
	}
}
