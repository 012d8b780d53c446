package checkout

import (
	"bytes"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/prasetyoadi/umkm-storefront/pkg/errors"
)

// RenderTarget rasterizes a command list into an encoded image. The service
// only depends on this interface so tests can capture commands without
// producing pixels.
type RenderTarget interface {
	Render(width, height float64, cmds []Command) ([]byte, error)
}

// ImageRenderer rasterizes commands onto a PNG canvas, honoring each text
// command's declared size and weight via the embedded Go fonts.
type ImageRenderer struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

func NewImageRenderer() (*ImageRenderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "parse regular font")
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "parse bold font")
	}
	return &ImageRenderer{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (r *ImageRenderer) face(size float64, bold bool) (font.Face, error) {
	if size <= 0 {
		size = 11
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := faceKey{size: size, bold: bold}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}

	src := r.regular
	if bold {
		src = r.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "build font face")
	}
	r.faces[key] = face
	return face, nil
}

func (r *ImageRenderer) Render(width, height float64, cmds []Command) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.CodeInternal, "invoice canvas dimensions must be positive")
	}

	dc := gg.NewContext(int(width), int(height))

	for _, cmd := range cmds {
		dc.SetHexColor(cmd.Color)
		switch cmd.Kind {
		case KindRect:
			dc.DrawRectangle(cmd.X, cmd.Y, cmd.W, cmd.H)
			dc.Fill()
		case KindLine:
			dc.SetLineWidth(1)
			dc.DrawLine(cmd.X, cmd.Y, cmd.X2, cmd.Y2)
			dc.Stroke()
		case KindText:
			face, err := r.face(cmd.Size, cmd.Bold)
			if err != nil {
				return nil, err
			}
			dc.SetFontFace(face)
			ax := 0.0
			switch cmd.Align {
			case AlignCenter:
				ax = 0.5
			case AlignRight:
				ax = 1.0
			}
			dc.DrawStringAnchored(cmd.Text, cmd.X, cmd.Y, ax, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "encode invoice png")
	}
	return buf.Bytes(), nil
}
