package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"

	"github.com/laurentmuller/calculation-sub010/observability"
	"github.com/laurentmuller/calculation-sub010/writer"
)

// ErrImageFormat is returned for data that is neither PNG nor JPEG.
var ErrImageFormat = errors.New("document: image must be PNG or JPEG")

type imageEntry struct {
	index      int
	name       string
	width      int
	height     int
	colorSpace string
	bpc        int
	filter     string
	decode     []float64
	data       []byte
	smask      []byte
}

// ImageInfo describes a registered image.
type ImageInfo struct {
	Width, Height int
}

// RegisterImage decodes PNG or JPEG data and keeps it under name. Registering
// a name twice returns the first image.
func (d *Document) RegisterImage(name string, data []byte) (ImageInfo, error) {
	if d.state == stateClosed {
		return ImageInfo{}, ErrClosed
	}
	if img, ok := d.images[name]; ok {
		return ImageInfo{Width: img.width, Height: img.height}, nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("register image %q: %w", name, err)
	}
	var entry *imageEntry
	switch format {
	case "jpeg":
		entry = jpegEntry(cfg, data)
	case "png":
		entry, err = pngEntry(data)
		if err != nil {
			return ImageInfo{}, fmt.Errorf("register image %q: %w", name, err)
		}
	default:
		return ImageInfo{}, fmt.Errorf("register image %q: %w (got %s)", name, ErrImageFormat, format)
	}
	entry.name = name
	entry.index = len(d.imageOrder) + 1
	d.images[name] = entry
	d.imageOrder = append(d.imageOrder, entry)
	d.logger.Debug("image registered",
		observability.String("name", name),
		observability.String("format", format),
		observability.Int("width", entry.width),
		observability.Int("height", entry.height))
	return ImageInfo{Width: entry.width, Height: entry.height}, nil
}

func jpegEntry(cfg image.Config, data []byte) *imageEntry {
	e := &imageEntry{width: cfg.Width, height: cfg.Height, bpc: 8, filter: "DCTDecode", data: data, colorSpace: "DeviceRGB"}
	switch cfg.ColorModel {
	case color.GrayModel:
		e.colorSpace = "DeviceGray"
	case color.CMYKModel:
		e.colorSpace = "DeviceCMYK"
		e.decode = []float64{1, 0, 1, 0, 1, 0, 1, 0}
	}
	return e
}

func pngEntry(data []byte) (*imageEntry, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	e := &imageEntry{width: b.Dx(), height: b.Dy(), bpc: 8, filter: "FlateDecode"}
	_, gray := img.(*image.Gray)
	var pixels, alpha []byte
	opaque := true
	if gray {
		e.colorSpace = "DeviceGray"
		pixels = make([]byte, 0, b.Dx()*b.Dy())
	} else {
		e.colorSpace = "DeviceRGB"
		pixels = make([]byte, 0, 3*b.Dx()*b.Dy())
	}
	alpha = make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if gray {
				pixels = append(pixels, c.R)
			} else {
				pixels = append(pixels, c.R, c.G, c.B)
			}
			alpha = append(alpha, c.A)
			if c.A != 0xff {
				opaque = false
			}
		}
	}
	if e.data, err = writer.Deflate(pixels, 0); err != nil {
		return nil, err
	}
	if !opaque {
		if e.smask, err = writer.Deflate(alpha, 0); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Image draws a registered image. A zero width or height keeps the aspect
// ratio; both zero size the image at 96 dpi.
func (d *Document) Image(name string, x, y, w, h float64, link Link) {
	img, ok := d.images[name]
	if !ok {
		d.SetErr(fmt.Errorf("document: image %q is not registered", name))
		return
	}
	w, h = d.ImageSize(ImageInfo{Width: img.width, Height: img.height}, w, h)
	d.Outf("q %.2f 0 0 %.2f %.2f %.2f cm /I%d Do Q", w*d.k, h*d.k, x*d.k, (d.h-(y+h))*d.k, img.index)
	if !link.IsZero() {
		d.Link(x, y, w, h, link)
	}
}

// ImageSize resolves the drawn size of an image the way Image does.
func (d *Document) ImageSize(info ImageInfo, w, h float64) (float64, float64) {
	if info.Width == 0 || info.Height == 0 {
		return w, h
	}
	if w == 0 && h == 0 {
		w = float64(info.Width) * 72 / 96 / d.k
		h = float64(info.Height) * 72 / 96 / d.k
	}
	if w == 0 {
		w = h * float64(info.Width) / float64(info.Height)
	}
	if h == 0 {
		h = w * float64(info.Height) / float64(info.Width)
	}
	return w, h
}
