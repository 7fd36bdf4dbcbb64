package render

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glgradient/log"
	"github.com/stewi1014/glgradient/programs"
)

var logger = log.New("render")

type State int32

const (
	Uninitialized State = iota
	Building
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Building:
		return "building"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

var (
	_ Startable = (*Session)(nil)
	_ Stoppable = (*Session)(nil)
)

// Session owns one graphics context and everything created on it, and
// draws the field once per display frame between Start and Stop.
//
// Start, Stop and the frame callbacks must run on the goroutine that owns
// the context. OnResize, State, Frames and Err are safe from any goroutine.
type Session struct {
	opts     Options
	provider ContextProvider
	surface  Surface
	frames   FrameScheduler
	clock    Clock

	mu       sync.Mutex
	err      error
	device   Device
	program  *Program
	geometry *Geometry
	start    time.Time
	cancel   func()
	viewport [2]int

	state   atomic.Int32
	resized atomic.Bool
	drawn   atomic.Uint64
	skipped atomic.Uint64
}

// NewSession returns an unstarted session. A nil clock uses SystemClock.
func NewSession(
	provider ContextProvider,
	surface Surface,
	frames FrameScheduler,
	clock Clock,
	opts Options,
) *Session {
	if clock == nil {
		clock = SystemClock
	}
	return &Session{
		opts:     opts,
		provider: provider,
		surface:  surface,
		frames:   frames,
		clock:    clock,
	}
}

func (s *Session) State() State {
	return State(s.state.Load())
}

// Frames is the number of frames drawn so far.
func (s *Session) Frames() uint64 {
	return s.drawn.Load()
}

// Skipped is the number of ticks that drew nothing because the surface had
// no area.
func (s *Session) Skipped() uint64 {
	return s.skipped.Load()
}

// Err is the error that stopped the session during Start, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Start acquires the context, builds the program and geometry and requests
// the first frame. On failure everything acquired is released and the
// session is left Stopped. The error is returned, not logged; reporting it
// is up to the host.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.State() {
	case Stopped:
		return ErrSessionStopped
	case Building, Running:
		return ErrAlreadyStarted
	}

	s.state.Store(int32(Building))
	if err := s.build(); err != nil {
		s.release()
		s.err = err
		s.state.Store(int32(Stopped))
		logger.Debugf("session failed to start: %v", err)
		return err
	}

	s.start = s.clock.Now()
	s.resized.Store(true)
	s.state.Store(int32(Running))
	logger.Info("session running")

	s.schedule()
	return nil
}

func (s *Session) build() error {
	dev, err := s.provider.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}
	if dev == nil {
		return ErrContextUnavailable
	}
	s.device = dev

	s.program, err = BuildProgram(dev, s.opts.VertexShader, s.opts.FragmentShader)
	if err != nil {
		return err
	}

	s.geometry, err = NewGeometry(dev, s.program)
	return err
}

// OnResize notes that the surface changed size. The viewport is synced at
// the start of the next frame; calls after Stop are ignored.
func (s *Session) OnResize(width, height int) {
	if s.State() == Stopped {
		return
	}
	s.resized.Store(true)
	logger.Debugf("surface resized to %dx%d", width, height)
}

// Stop cancels the next frame and releases geometry, program and context,
// in that order. No frame runs after Stop returns. Stop is idempotent and
// the session cannot be started again.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() == Stopped {
		return
	}
	s.state.Store(int32(Stopped))

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.release()

	logger.Infof("session stopped after %d frames", s.drawn.Load())
}

func (s *Session) release() {
	if s.device == nil {
		return
	}
	if s.geometry != nil {
		s.geometry.Release(s.device)
		s.geometry = nil
	}
	if s.program != nil {
		s.program.Release(s.device)
		s.program = nil
	}
	s.device.Release()
	s.device = nil
}

func (s *Session) schedule() {
	s.cancel = s.frames.RequestFrame(s.onFrame)
}

func (s *Session) onFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A frame dispatched before Stop can still arrive afterwards.
	if s.State() != Running {
		return
	}
	s.cancel = nil

	if err := s.tick(); err != nil {
		logger.Debugf("frame skipped: %v", err)
	}
	s.schedule()
}

func (s *Session) tick() error {
	width, height := s.surface.Size()
	if width <= 0 || height <= 0 {
		s.skipped.Add(1)
		return fmt.Errorf("%w: %dx%d", ErrTransientFrame, width, height)
	}

	size := [2]int{width, height}
	if s.resized.Swap(false) || s.viewport != size {
		s.device.Viewport(int32(width), int32(height))
		s.viewport = size
	}

	s.device.UseProgram(s.program.Handle)
	s.program.SetUniforms(s.device, programs.Uniforms{
		Resolution: mgl32.Vec2{float32(width), float32(height)},
		Time:       float32(s.clock.Now().Sub(s.start).Seconds()),
	})

	c := s.opts.ClearColor
	s.device.Clear(c[0], c[1], c[2], c[3])
	s.geometry.Draw(s.device)

	s.drawn.Add(1)
	return nil
}
