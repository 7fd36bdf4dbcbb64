package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glgradient/gldevice"
	"github.com/stewi1014/glgradient/render"
	"github.com/urfave/cli"
)

func NewRenderWindow(width, height int, fullscreen bool) (*RenderWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	glfw.WindowHint(glfw.AlphaBits, 8)

	var monitor *glfw.Monitor
	if fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	window, err := glfw.CreateWindow(
		width,
		height,
		"GLGradient",
		monitor,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow: %w", err)
	}

	w := &RenderWindow{
		Window: window,
		frames: render.NewFrameQueue(nil),
	}

	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	return w, nil
}

// RenderWindow hosts a session in a GLFW window. Frames are pumped after
// every buffer swap, so the loop runs at the display's refresh rate.
type RenderWindow struct {
	*glfw.Window
	frames *render.FrameQueue
}

// Run renders until the window is closed or ctx is done.
func (w *RenderWindow) Run(ctx context.Context, session *render.Session) {
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		session.OnResize(width, height)
	})
	defer w.SetFramebufferSizeCallback(nil)

	for !w.ShouldClose() && ctx.Err() == nil && session.State() == render.Running {
		w.frames.RunPending()
		w.SwapBuffers()
		glfw.PollEvents()
	}
}

func runWindow(c *cli.Context) (err error) {
	opts, err := sessionOptions(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, quit := context.WithCancelCause(ctx)
	defer func() {
		if cause := context.Cause(ctx); err == nil && cause != nil && cause != context.Canceled {
			err = cause
		}
	}()
	defer CatchPanicToContext(quit)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: glfw.Init: %v", render.ErrContextUnavailable, err)
	}
	defer glfw.Terminate()

	w, err := NewRenderWindow(c.Int("width"), c.Int("height"), c.Bool("fullscreen"))
	if err != nil {
		return fmt.Errorf("%w: %v", render.ErrContextUnavailable, err)
	}
	defer w.Destroy()

	session := render.NewSession(
		gldevice.Provider(gldevice.Options{Debug: c.Bool("gl-debug")}),
		render.SurfaceFunc(w.GetFramebufferSize),
		w.frames,
		nil,
		opts,
	)
	defer session.Stop()

	if err := session.Start(); err != nil {
		return err
	}

	w.Run(ctx, session)
	return nil
}
