package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glgradient/programs"
	"github.com/urfave/cli"
	"golang.org/x/image/draw"
)

type SaveOptions struct {
	Name          string
	Width, Height int
	Antialias     float32
	Supersample   int
}

func runSnapshot(c *cli.Context) error {
	program, err := cpuProgram(c)
	if err != nil {
		return err
	}

	opts := SaveOptions{
		Name:        c.String("out"),
		Width:       c.Int("width"),
		Height:      c.Int("height"),
		Antialias:   float32(c.Float64("antialias")),
		Supersample: c.Int("supersample"),
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return cli.NewExitError(fmt.Sprintf("invalid size %vx%v", opts.Width, opts.Height), 2)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return save(ctx, opts, program, programs.Uniforms{
		Time: float32(c.Float64("time")),
	})
}

// save renders one frame of program at uniforms.Time and writes it to
// opts.Name as PNG. The file is removed if rendering does not finish.
func save(
	ctx context.Context,
	opts SaveOptions,
	program programs.Program,
	uniforms programs.Uniforms,
) (err error) {
	file, err := os.Create(opts.Name)
	if err != nil {
		return err
	}
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic rendering %v: %v", opts.Name, v)
		}
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(file.Name())
		}
	}()

	uniforms.Resolution = mgl32.Vec2{
		float32(opts.Width * opts.Supersample),
		float32(opts.Height * opts.Supersample),
	}
	img, err := program.GetImage(uniforms)
	if err != nil {
		return err
	}

	if opts.Antialias > 0 {
		img = programs.AntiAlias9x(img, opts.Antialias*float32(opts.Supersample))
	}

	imageImage := programs.ToImage(img)
	progress := programs.WrapWithProgress(&imageImage)
	buff := programs.BufferImage(imageImage)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				logger.Infof("rendering %v: %.0f%%", opts.Name, progress()*100)
			}
		}
	}()
	err = buff.Buffer(ctx)
	close(done)
	if err != nil {
		return err
	}

	var out image.Image = buff
	if opts.Supersample > 1 {
		scaled := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), buff, buff.Bounds(), draw.Src, nil)
		out = scaled
	}

	if err := png.Encode(file, out); err != nil {
		return err
	}

	logger.Noticef("saved %v (%vx%v, t=%vs)", file.Name(), opts.Width, opts.Height, uniforms.Time)
	return nil
}
