package main

import (
	"os"
	"runtime"
	"strings"

	"github.com/stewi1014/glgradient/log"
	"github.com/stewi1014/glgradient/programs"
	"github.com/stewi1014/glgradient/render"
	"github.com/urfave/cli"
)

var logger = log.New("glgradient")

func init() {
	// GLFW and GTK both want the process main thread.
	runtime.LockOSThread()
}

var programFlag = cli.StringFlag{
	Name:  "program, p",
	Value: programs.GradientName,
	Usage: "name of the program to render (" + strings.Join(programs.Names(), ", ") + ")",
}

var glDebugFlag = cli.BoolFlag{
	Name:  "gl-debug",
	Usage: "log OpenGL debug messages",
}

// sizeFlags returns the surface size flags followed by extra.
func sizeFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 1200,
			Usage: "initial surface width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 800,
			Usage: "initial surface height",
		},
	}, extra...)
}

func windowFlags() []cli.Flag {
	return sizeFlags(programFlag, glDebugFlag, cli.BoolFlag{
		Name:  "fullscreen, f",
		Usage: "cover the primary monitor",
	})
}

func main() {
	app := cli.NewApp()
	app.Name = "glgradient"
	app.Usage = "animated procedural background"
	app.Version = "0.1.0"
	app.Flags = append([]cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}, windowFlags()...)
	app.Before = setupLogging
	app.Action = runWindow
	app.Commands = []cli.Command{
		{
			Name:   "window",
			Usage:  "render in a GLFW window (default)",
			Flags:  windowFlags(),
			Action: runWindow,
		},
		{
			Name:   "gtk",
			Usage:  "render in a GTK GLArea",
			Flags:  sizeFlags(programFlag, glDebugFlag),
			Action: runGTK,
		},
		{
			Name:  "snapshot",
			Usage: "render one frame on the CPU to a PNG file",
			Description: `
Evaluate the program's CPU rendition for every pixel of a single frame and
encode the result as PNG. Transparent regions of the field stay transparent.`,
			Flags: sizeFlags(
				programFlag,
				cli.Float64Flag{
					Name:  "time, t",
					Value: 0,
					Usage: "elapsed seconds to render the frame at",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.Float64Flag{
					Name:  "antialias",
					Value: 0,
					Usage: "sample a 3x3 grid this many pixels apart (0 disables)",
				},
				cli.IntFlag{
					Name:  "supersample",
					Value: 1,
					Usage: "render at this multiple of the size and downscale",
				},
			),
			Action: runSnapshot,
		},
		{
			Name:  "term",
			Usage: "preview the CPU rendition in the terminal",
			Flags: []cli.Flag{
				programFlag,
				cli.IntFlag{
					Name:  "fps",
					Value: 10,
					Usage: "frames per second",
				},
			},
			Action: runTerminal,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.Bool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}

func sessionOptions(ctx *cli.Context) (render.Options, error) {
	name := ctx.String("program")
	opts, ok := render.OptionsFor(name)
	if !ok {
		return render.Options{}, cli.NewExitError("unknown program "+name, 2)
	}
	return opts, nil
}

func cpuProgram(ctx *cli.Context) (programs.Program, error) {
	name := ctx.String("program")
	p, ok := programs.Lookup(name)
	if !ok {
		return p, cli.NewExitError("unknown program "+name, 2)
	}
	if p.GetPixel == nil {
		return p, programs.ErrNoCPUImplementation
	}
	return p, nil
}
