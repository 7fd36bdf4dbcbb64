package programs

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// WrapWithProgress replaces *img with an image that counts pixel reads,
// returning a function reporting the fraction of pixels read so far.
func WrapWithProgress(img *image.Image) func() float64 {
	p := &ProgressImage{
		Image: *img,
	}

	*img = p
	return p.Progress
}

type ProgressImage struct {
	image.Image
	count atomic.Int64
}

func (i *ProgressImage) At(x, y int) color.Color {
	i.count.Add(1)
	return i.Image.At(x, y)
}

func (i *ProgressImage) Progress() float64 {
	end := i.Bounds().Dx() * i.Bounds().Dy()
	if end == 0 {
		return 1
	}
	return float64(i.count.Load()) / float64(end)
}

// AntiAlias9x samples a 3x3 grid around each sampled position,
// returning the average colour.
//
// spread is the distance in pixels between neighbouring samples.
func AntiAlias9x(img Image, spread float32) Image {
	return &antialias9xImage{
		Image:  img,
		offset: spread,
	}
}

type antialias9xImage struct {
	Image
	offset float32
}

func (i *antialias9xImage) GetPixel(pos mgl32.Vec2) mgl32.Vec4 {
	avg := mgl32.Vec4{}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			avg = avg.Add(i.Image.GetPixel(mgl32.Vec2{
				pos[0] + float32(dx)*i.offset,
				pos[1] + float32(dy)*i.offset,
			}))
		}
	}
	return avg.Mul(1 / float32(9))
}

func BufferImage(img image.Image) *BufferedImage {
	return &BufferedImage{
		Image:  img,
		height: img.Bounds().Dy(),
	}
}

// BufferedImage evaluates its source once, in parallel column chunks.
type BufferedImage struct {
	image.Image
	height int
	buff   []color.Color
}

func (b *BufferedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Image.Bounds().Dx(), b.Image.Bounds().Dy())
}

func (b *BufferedImage) At(x, y int) color.Color {
	return b.buff[x*b.height+y]
}

func (b *BufferedImage) Buffer(ctx context.Context) error {
	b.buff = make([]color.Color, b.Image.Bounds().Dx()*b.Image.Bounds().Dy())

	min, max := b.Image.Bounds().Min, b.Image.Bounds().Max
	chunkSize := 50
	var wg sync.WaitGroup

	for chunkMin := min.X; chunkMin < max.X; chunkMin += chunkSize {
		chunkMax := chunkMin + chunkSize
		if chunkMax > max.X {
			chunkMax = max.X
		}

		wg.Add(1)
		go func(chunkMin, chunkMax int) {
			defer wg.Done()
			i := (chunkMin - min.X) * b.height
			for x := chunkMin; x < chunkMax; x++ {
				if ctx.Err() != nil {
					return
				}

				for y := min.Y; y < max.Y; y++ {
					b.buff[i] = b.Image.At(x, y)
					i++
				}
			}
		}(chunkMin, chunkMax)
	}

	wg.Wait()

	return ctx.Err()
}

func (b *BufferedImage) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToImage adapts a program image to image.Image. Image rows run top to
// bottom while fragment coordinates run bottom to top, so rows are flipped
// and every pixel is sampled at its centre.
func ToImage(img Image) image.Image {
	return &imageImage{
		Image: img,
	}
}

type imageImage struct {
	Image
}

func (i *imageImage) At(x, y int) color.Color {
	b := i.Bounds()
	c := i.GetPixel(mgl32.Vec2{
		float32(x-b.Min.X) + 0.5,
		float32(b.Max.Y-1-y) + 0.5,
	})

	return color.NRGBA{
		R: toByte(c[0]),
		G: toByte(c[1]),
		B: toByte(c[2]),
		A: toByte(c[3]),
	}
}

func (i *imageImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func toByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
