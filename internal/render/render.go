// SPDX-License-Identifier: MIT
/*
Package render draws a magnitude spectrogram as a heatmap on a fixed-size
canvas with labelled axes.

Layout, outside in: a blank margin on every side, a label area below the
plot (X ticks) and left of it (Y ticks), then the plot area itself. Frame
index runs along X, bin index along Y with bin 0 at the bottom. Only bins
below WindowSize/2 are drawn; every frame/bin cell becomes one small filled
point coloured by IntensityToColor.
*/
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"spectro/internal/config"
	"spectro/internal/log"
	"spectro/internal/stft"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	tickLength = 5
	tickTarget = 10
	labelGap   = 3
	xAxisDesc  = "Time (s)"
	yAxisDesc  = "Frequency (Hz)"
	xAxisUnit  = "s"
	yAxisUnit  = "Hz"
)

var (
	background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	foreground = color.RGBA{A: 0xff}
	gridColor  = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
)

// Renderer turns spectrograms into images. It holds the parsed label font
// and may be reused for several spectrograms.
type Renderer struct {
	opts config.RenderConfig
	face font.Face
}

// NewRenderer validates the canvas geometry and loads the label font.
func NewRenderer(opts config.RenderConfig) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("canvas must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if plotRect(opts).Empty() {
		return nil, fmt.Errorf("no plot area left inside %dx%d canvas", opts.Width, opts.Height)
	}

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return &Renderer{opts: opts, face: face}, nil
}

// plotRect is the heatmap area after margins and label areas.
func plotRect(o config.RenderConfig) image.Rectangle {
	return image.Rect(
		o.Margin+o.YLabelArea,
		o.Margin,
		o.Width-o.Margin,
		o.Height-o.Margin-o.XLabelArea,
	)
}

// Render scans spec for its magnitude range and draws it onto a new
// canvas. sampleRate is only needed for physical axis units and may be 0
// otherwise.
func (r *Renderer) Render(spec *stft.Spectrogram, sampleRate float64) (*image.RGBA, error) {
	norm, err := Bounds(spec)
	if err != nil && !errors.Is(err, ErrEmptySpectrogram) {
		return nil, err
	}
	return r.Draw(spec, norm, sampleRate)
}

// Draw is Render with the magnitude range already known, typically from
// Bounds. A spectrogram without magnitudes gets axes only.
func (r *Renderer) Draw(spec *stft.Spectrogram, norm Normalizer, sampleRate float64) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	frames := float64(len(spec.Frames))
	bins := spec.WindowSize / 2

	xAxis, yAxis, err := r.axes(spec, frames, float64(bins), sampleRate)
	if err != nil {
		return nil, err
	}

	plot := plotRect(r.opts)
	r.drawMesh(img, plot, xAxis, yAxis)

	if len(spec.Frames) == 0 {
		log.Warnf("Render: spectrogram is empty, drawing axes only")
		return img, nil
	}
	if norm.Flat() {
		log.Warnf("Render: all magnitudes equal %g, every cell uses the base colour", norm.Min)
	}
	log.Debugf("Render: magnitude range [%g, %g], %d frames x %d bins", norm.Min, norm.Max, len(spec.Frames), bins)

	for x, frame := range spec.Frames {
		for y := 0; y < bins && y < len(frame); y++ {
			px, py := toPixel(plot, xAxis, yAxis, float64(x), float64(y))
			fillCircle(img, plot, px, py, r.opts.PointRadius, IntensityToColor(norm.Intensity(frame[y])))
		}
	}

	return img, nil
}

func (r *Renderer) axes(spec *stft.Spectrogram, frames, bins, sampleRate float64) (axis, axis, error) {
	if r.opts.AxisUnits != config.AxisUnitsPhysical {
		return rawAxis(frames, xAxisUnit), rawAxis(bins, yAxisUnit), nil
	}
	if sampleRate <= 0 {
		return axis{}, axis{}, fmt.Errorf("physical axis units need a positive sample rate, got %g", sampleRate)
	}
	return physicalAxis(frames, spec.FrameTime(1, sampleRate), xAxisUnit),
		physicalAxis(bins, spec.BinFrequency(1, sampleRate), yAxisUnit),
		nil
}

// toPixel maps a data coordinate into the plot rectangle, Y pointing up.
func toPixel(plot image.Rectangle, xAxis, yAxis axis, x, y float64) (int, int) {
	w := float64(plot.Dx() - 1)
	h := float64(plot.Dy() - 1)
	px := plot.Min.X + int(x/xAxis.extent*w+0.5)
	py := plot.Max.Y - 1 - int(y/yAxis.extent*h+0.5)
	return px, py
}

func (r *Renderer) drawMesh(img *image.RGBA, plot image.Rectangle, xAxis, yAxis axis) {
	xTicks := xAxis.ticks(tickTarget)
	yTicks := yAxis.ticks(tickTarget)

	for _, t := range xTicks {
		px, _ := toPixel(plot, xAxis, yAxis, t.pos, 0)
		vLine(img, px, plot.Min.Y, plot.Max.Y-1, gridColor)
	}
	for _, t := range yTicks {
		_, py := toPixel(plot, xAxis, yAxis, 0, t.pos)
		hLine(img, plot.Min.X, plot.Max.X-1, py, gridColor)
	}

	// Axis lines on the left and bottom edges.
	vLine(img, plot.Min.X, plot.Min.Y, plot.Max.Y-1, foreground)
	hLine(img, plot.Min.X, plot.Max.X-1, plot.Max.Y-1, foreground)

	ascent := r.face.Metrics().Ascent.Ceil()

	for _, t := range xTicks {
		px, _ := toPixel(plot, xAxis, yAxis, t.pos, 0)
		vLine(img, px, plot.Max.Y, plot.Max.Y+tickLength-1, foreground)
		w := r.textWidth(t.label)
		r.drawText(img, t.label, px-w/2, plot.Max.Y+tickLength+labelGap+ascent)
	}
	for _, t := range yTicks {
		_, py := toPixel(plot, xAxis, yAxis, 0, t.pos)
		hLine(img, plot.Min.X-tickLength, plot.Min.X-1, py, foreground)
		w := r.textWidth(t.label)
		r.drawText(img, t.label, plot.Min.X-tickLength-labelGap-w, py+ascent/2)
	}

	// Axis descriptions sit in the outer margin.
	descY := plot.Max.Y + tickLength + labelGap + ascent + r.opts.XLabelArea/2 + ascent/2
	r.drawText(img, xAxisDesc, plot.Min.X+plot.Dx()/2-r.textWidth(xAxisDesc)/2, descY)
	r.drawVerticalText(img, yAxisDesc, labelGap, plot.Min.Y+plot.Dy()/2)
}

func (r *Renderer) textWidth(s string) int {
	return font.MeasureString(r.face, s).Ceil()
}

// drawText draws s with its baseline starting at (x, y).
func (r *Renderer) drawText(dst draw.Image, s string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(foreground),
		Face: r.face,
		Dot:  freetype.Pt(x, y),
	}
	d.DrawString(s)
}

// drawVerticalText draws s rotated 90° counter-clockwise, centred
// vertically on cy with its left edge at x.
func (r *Renderer) drawVerticalText(dst *image.RGBA, s string, x, cy int) {
	metrics := r.face.Metrics()
	w := r.textWidth(s)
	h := (metrics.Ascent + metrics.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return
	}

	flat := image.NewRGBA(image.Rect(0, 0, w, h))
	r.drawText(flat, s, 0, metrics.Ascent.Ceil())

	rotated := image.NewRGBA(image.Rect(0, 0, h, w))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			rotated.SetRGBA(sy, w-1-sx, flat.RGBAAt(sx, sy))
		}
	}

	target := image.Rect(x, cy-w/2, x+h, cy-w/2+w)
	draw.Draw(dst, target, rotated, image.Point{}, draw.Over)
}

func hLine(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetRGBA(x, y, c)
		}
	}
}

func vLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetRGBA(x, y, c)
		}
	}
}

// fillCircle paints a filled disc clipped to clip. Radius 0 is one pixel.
func fillCircle(img *image.RGBA, clip image.Rectangle, cx, cy, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			p := image.Pt(cx+dx, cy+dy)
			if p.In(clip) {
				img.SetRGBA(p.X, p.Y, c)
			}
		}
	}
}
