package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glgradient/gldevice"
	"github.com/stewi1014/glgradient/render"
	"github.com/urfave/cli"
)

// NewGLAreaWindow builds a window whose GLArea hosts a session: realize
// starts it, resize forwards to OnResize, render pumps one frame and
// unrealize stops it.
func NewGLAreaWindow(
	app *gtk.Application,
	width, height int,
	opts render.Options,
	glDebug bool,
	quit context.CancelCauseFunc,
) (*GLAreaWindow, error) {
	var err error
	w := &GLAreaWindow{
		quit: quit,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}

	w.SetDefaultSize(width, height)

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		return nil, fmt.Errorf("gtk.GLAreaNew: %w", err)
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.SetHasAlpha(true)

	w.frames = render.NewFrameQueue(w.gla.QueueRender)
	w.session = render.NewSession(
		gldevice.Provider(gldevice.Options{Debug: glDebug}),
		render.SurfaceFunc(w.surfaceSize),
		w.frames,
		nil,
		opts,
	)

	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.Add(w.gla)
	w.ShowAll()

	return w, nil
}

type GLAreaWindow struct {
	*gtk.ApplicationWindow
	gla *gtk.GLArea

	quit context.CancelCauseFunc

	frames  *render.FrameQueue
	session *render.Session
}

// surfaceSize is the GLArea's size in device pixels.
func (w *GLAreaWindow) surfaceSize() (width, height int) {
	scale := w.gla.GetScaleFactor()
	return w.gla.GetAllocatedWidth() * scale, w.gla.GetAllocatedHeight() * scale
}

func (w *GLAreaWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	err := gla.GetError()
	if err == nil {
		err = w.session.Start()
	} else {
		err = fmt.Errorf("%w: %v", render.ErrContextUnavailable, err)
	}

	if err != nil {
		glib.IdleAdd(func() {
			NewErrorDialog(w.ApplicationWindow, err)
			w.quit(err)
		})
	}
}

func (w *GLAreaWindow) glaRender(gla *gtk.GLArea) bool {
	gla.AttachBuffers()
	w.frames.RunPending()
	return true
}

func (w *GLAreaWindow) resize(gla *gtk.GLArea, width, height int) {
	w.session.OnResize(width, height)
}

func (w *GLAreaWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	w.session.Stop()
}

func runGTK(c *cli.Context) error {
	opts, err := sessionOptions(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	appContext, appQuit := context.WithCancelCause(ctx)
	defer CatchPanicToContext(appQuit)

	gtk.Init(nil)
	app, err := gtk.ApplicationNew("com.github.stewi1014.glgradient", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew: %w", err)
	}

	app.Connect("activate", func() {
		w, err := NewGLAreaWindow(app, c.Int("width"), c.Int("height"), opts, c.Bool("gl-debug"), appQuit)
		if err != nil {
			appQuit(err)
			return
		}
		w.SetTitle("GLGradient")
		w.Connect("destroy", func() {
			appQuit(nil)
		})
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)

	if err := context.Cause(appContext); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
