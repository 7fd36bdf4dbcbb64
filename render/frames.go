package render

import "sync"

// FrameQueue is a FrameScheduler the host pumps once per display frame.
type FrameQueue struct {
	mu      sync.Mutex
	nextID  uint64
	pending []queuedFrame

	onRequest func()
}

type queuedFrame struct {
	id uint64
	fn func()
}

// NewFrameQueue returns an empty queue. onRequest, if non-nil, is called
// after every request so the host can wake its frame clock.
func NewFrameQueue(onRequest func()) *FrameQueue {
	return &FrameQueue{onRequest: onRequest}
}

func (q *FrameQueue) RequestFrame(fn func()) (cancel func()) {
	q.mu.Lock()
	q.nextID++
	id := q.nextID
	q.pending = append(q.pending, queuedFrame{id: id, fn: fn})
	q.mu.Unlock()

	if q.onRequest != nil {
		q.onRequest()
	}

	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		for i, f := range q.pending {
			if f.id == id {
				q.pending = append(q.pending[:i], q.pending[i+1:]...)
				return
			}
		}
	}
}

// RunPending runs every callback requested before the call and returns how
// many ran. Callbacks requested while running wait for the next call.
func (q *FrameQueue) RunPending() int {
	q.mu.Lock()
	frames := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, f := range frames {
		f.fn()
	}
	return len(frames)
}

// Len is the number of callbacks waiting for the next frame.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
