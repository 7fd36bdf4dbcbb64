package main

import (
	"context"
	"image/color"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glgradient/programs"
	"github.com/urfave/cli"
)

// terminalPreview draws a program's CPU rendition with half-block cells,
// two image rows per terminal row.
type terminalPreview struct {
	screen  tcell.Screen
	program programs.Program
	start   time.Time
}

func runTerminal(c *cli.Context) error {
	program, err := cpuProgram(c)
	if err != nil {
		return err
	}

	fps := c.Int("fps")
	if fps <= 0 {
		return cli.NewExitError("fps must be positive", 2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := &terminalPreview{
		screen:  screen,
		program: program,
		start:   time.Now(),
	}
	return t.run(ctx, time.Second/time.Duration(fps))
}

func (t *terminalPreview) run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	if err := t.draw(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}

		case <-ticker.C:
			if err := t.draw(ctx); err != nil {
				return err
			}
		}
	}
}

func (t *terminalPreview) draw(ctx context.Context) error {
	width, height := t.screen.Size()
	if width <= 0 || height <= 0 {
		return nil
	}

	img, err := t.program.GetImage(programs.Uniforms{
		Resolution: mgl32.Vec2{float32(width), float32(height * 2)},
		Time:       float32(time.Since(t.start).Seconds()),
	})
	if err != nil {
		return err
	}

	buff := programs.BufferImage(programs.ToImage(img))
	if err := buff.Buffer(ctx); err != nil {
		// Interrupted mid-frame; the caller sees ctx.Done next.
		return nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(buff.At(x, y*2))).
				Background(cellColor(buff.At(x, y*2+1)))
			t.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// cellColor maps fully transparent pixels to the terminal's own background.
func cellColor(c color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}
