package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/runoshun/hourlog/internal/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Canvas geometry in pixels.
const (
	pngWidth     = 800
	pngHeight    = 500
	donutCenterX = 230
	donutCenterY = 270
	donutOuter   = 190
	donutInner   = 95 // Ring width is half the radius
	legendX      = 460
	legendY      = 90
	legendStep   = 30
	fontSize     = 14
)

// goRegular is parsed once; faces are not safe for concurrent use, so each
// render creates its own.
var goRegular = sync.OnceValues(func() (*sfnt.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// newFace returns a Go Regular face, which covers Latin, Cyrillic and common punctuation.
func newFace() (font.Face, error) {
	f, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("parse chart font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create chart font face: %w", err)
	}
	return face, nil
}

var (
	background  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	textColor   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	placeholder = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
)

// PNGRenderer draws a donut chart with a legend and encodes it as PNG.
type PNGRenderer struct {
	dir string
}

// NewPNGRenderer creates a PNGRenderer. When dir is set, every chart is also
// written there as chart-*.png.
func NewPNGRenderer(dir string) *PNGRenderer {
	return &PNGRenderer{dir: dir}
}

// Render draws series. An empty series yields a grey "No data" placeholder.
func (r *PNGRenderer) Render(series domain.Series, title string) (*domain.ChartImage, error) {
	face, err := newFace()
	if err != nil {
		return nil, err
	}
	defer func() { _ = face.Close() }()

	img := image.NewRGBA(image.Rect(0, 0, pngWidth, pngHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	drawText(img, face, 20, 30, title)

	total := series.Total()
	empty := len(series) == 0 || total <= 0
	if empty {
		drawRing(img, func(float64) color.RGBA { return placeholder })
		drawCentered(img, face, donutCenterX, donutCenterY+5, "No data")
	} else {
		bounds := cumulativeBounds(series, total)
		drawRing(img, func(frac float64) color.RGBA {
			for i, upper := range bounds {
				if frac < upper {
					return sliceColor(i)
				}
			}
			return sliceColor(len(bounds) - 1)
		})
		for i, p := range series {
			y := legendY + i*legendStep
			draw.Draw(img, image.Rect(legendX, y-11, legendX+14, y+3), &image.Uniform{C: sliceColor(i)}, image.Point{}, draw.Src)
			drawText(img, face, legendX+22, y, legendLine(p, total))
		}
		drawCentered(img, face, donutCenterX, donutCenterY+5, fmt.Sprintf("%.2f h", total))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	chart := &domain.ChartImage{
		Title:       title,
		Format:      domain.ChartFormatPNG,
		Data:        buf.Bytes(),
		Placeholder: empty,
	}
	if r.dir != "" {
		path, err := r.save(buf.Bytes())
		if err != nil {
			return nil, err
		}
		chart.Path = path
	}
	return chart, nil
}

func (r *PNGRenderer) save(data []byte) (string, error) {
	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return "", fmt.Errorf("create chart directory: %w", err)
	}
	path := filepath.Join(r.dir, "chart-"+uuid.NewString()+".png")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640) //nolint:gosec // Charts are shared with the chat transport
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write chart file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close chart file: %w", err)
	}
	return filepath.Clean(path), nil
}

// cumulativeBounds returns the upper bound of each slice as a fraction of the circle.
func cumulativeBounds(series domain.Series, total float64) []float64 {
	bounds := make([]float64, len(series))
	var acc float64
	for i, p := range series {
		acc += p.Value
		bounds[i] = acc / total
	}
	return bounds
}

// drawRing colors every pixel of the donut. colorAt receives the pixel's
// position as a fraction of the circle, clockwise from 12 o'clock.
func drawRing(img *image.RGBA, colorAt func(frac float64) color.RGBA) {
	for y := donutCenterY - donutOuter; y <= donutCenterY+donutOuter; y++ {
		for x := donutCenterX - donutOuter; x <= donutCenterX+donutOuter; x++ {
			dx := float64(x - donutCenterX)
			dy := float64(y - donutCenterY)
			dist := math.Hypot(dx, dy)
			if dist > donutOuter || dist < donutInner {
				continue
			}
			angle := math.Atan2(dx, -dy) // 0 at top, clockwise
			if angle < 0 {
				angle += 2 * math.Pi
			}
			img.SetRGBA(x, y, colorAt(angle/(2*math.Pi)))
		}
	}
}

func drawText(img *image.RGBA, face font.Face, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: textColor},
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCentered draws s with its baseline at y, horizontally centered on x.
func drawCentered(img *image.RGBA, face font.Face, x, y int, s string) {
	width := font.MeasureString(face, s).Round()
	drawText(img, face, x-width/2, y, s)
}

// Ensure PNGRenderer implements domain.ChartRenderer.
var _ domain.ChartRenderer = (*PNGRenderer)(nil)
