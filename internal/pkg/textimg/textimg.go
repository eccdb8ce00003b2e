// Package textimg rasterizes operator-authored plain text into a PNG
// so it can be delivered alongside uploaded images.
package textimg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Options controls the rendered canvas. Zero values fall back to the
// documented defaults.
type Options struct {
	Width      int     // canvas width in px (default 800)
	Padding    int     // inner padding in px (default 40)
	FontSize   float64 // in px (default 28)
	LineHeight float64 // multiple of FontSize (default 1.6)
	Foreground color.Color
	Background color.Color
	FontTTF    []byte // raw TTF/OTF data (default Go Regular)
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Padding <= 0 {
		o.Padding = 40
	}
	if o.FontSize <= 0 {
		o.FontSize = 28
	}
	if o.LineHeight <= 0 {
		o.LineHeight = 1.6
	}
	if o.Foreground == nil {
		o.Foreground = color.RGBA{R: 0x3a, G: 0x2a, B: 0x1a, A: 0xff}
	}
	if o.Background == nil {
		o.Background = color.RGBA{R: 0xfa, G: 0xf6, B: 0xf0, A: 0xff}
	}
	if len(o.FontTTF) == 0 {
		o.FontTTF = goregular.TTF
	}
	return o
}

// row is one vertical slot of the layout: either a wrapped text line
// (full line height) or a blank paragraph (half a line height).
type row struct {
	text  string
	blank bool
}

// Render lays out and draws the given text. The result is fully
// determined by the text, the options and the font metrics.
func Render(text string, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()

	f, err := opentype.Parse(opts.FontTTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	defer face.Close()

	avail := fixed.I(opts.Width - 2*opts.Padding)
	rows := layout(face, text, avail)

	lineHeight := opts.FontSize * opts.LineHeight
	totalRows := 0.0
	for _, r := range rows {
		if r.blank {
			totalRows += 0.5
		} else {
			totalRows++
		}
	}
	height := int(math.Ceil(totalRows*lineHeight + float64(2*opts.Padding)))

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(opts.Foreground),
		Face: face,
	}
	ascent := face.Metrics().Ascent

	y := float64(opts.Padding)
	for _, r := range rows {
		if r.blank {
			y += lineHeight * 0.5
			continue
		}
		if r.text != "" {
			drawer.Dot = fixed.Point26_6{
				X: fixed.I(opts.Padding),
				Y: fixed.Int26_6(math.Round(y*64)) + ascent,
			}
			drawer.DrawString(r.text)
		}
		y += lineHeight
	}

	return img, nil
}

// RenderToFile renders the text and writes it as a PNG to outputPath,
// returning the path.
func RenderToFile(text, outputPath string, opts Options) (string, error) {
	img, err := Render(text, opts)
	if err != nil {
		return "", err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return outputPath, nil
}

// FileRenderer binds a fixed Options set so callers can render without
// carrying rendering configuration around.
type FileRenderer struct {
	Opts Options
}

func (r FileRenderer) RenderToFile(text, outputPath string) (string, error) {
	return RenderToFile(text, outputPath, r.Opts)
}

// layout splits the text into paragraphs on newlines and greedily wraps
// each non-blank paragraph against the measured glyph advances. A blank
// paragraph contributes a half-height row.
func layout(face font.Face, text string, avail fixed.Int26_6) []row {
	var rows []row
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			rows = append(rows, row{blank: true})
			continue
		}

		var current strings.Builder
		var currentWidth fixed.Int26_6
		for _, r := range paragraph {
			w := advance(face, r)
			if currentWidth+w > avail {
				rows = append(rows, row{text: current.String()})
				current.Reset()
				current.WriteRune(r)
				currentWidth = w
			} else {
				current.WriteRune(r)
				currentWidth += w
			}
		}
		if current.Len() > 0 {
			rows = append(rows, row{text: current.String()})
		}
	}
	return rows
}

func advance(face font.Face, r rune) fixed.Int26_6 {
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		adv, _ = face.GlyphAdvance(utf8.RuneError)
	}
	return adv
}
