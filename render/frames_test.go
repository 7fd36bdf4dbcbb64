package render

import "testing"

func TestFrameQueue(t *testing.T) {
	wakes := 0
	q := NewFrameQueue(func() { wakes++ })

	var ran []string
	q.RequestFrame(func() { ran = append(ran, "a") })
	cancel := q.RequestFrame(func() { ran = append(ran, "b") })
	q.RequestFrame(func() {
		ran = append(ran, "c")
		q.RequestFrame(func() { ran = append(ran, "d") })
	})

	if wakes != 3 {
		t.Fatalf("expected 3 wake ups; got %d", wakes)
	}

	cancel()
	cancel()

	if n := q.RunPending(); n != 2 {
		t.Fatalf("expected 2 callbacks to run; got %d", n)
	}
	if len(ran) != 2 || ran[0] != "a" || ran[1] != "c" {
		t.Fatalf("unexpected run order %v", ran)
	}

	if q.Len() != 1 {
		t.Fatalf("expected the nested request to wait for the next frame; got %d pending", q.Len())
	}
	q.RunPending()
	if ran[len(ran)-1] != "d" {
		t.Fatalf("expected nested request to run on the next frame; got %v", ran)
	}
}
