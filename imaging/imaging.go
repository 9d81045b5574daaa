// Package imaging decodes raster images held in memory and normalises them
// to PNG before they are embedded in a document.
package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrInvalidMime is returned when the sniffed MIME type is empty or
	// malformed.
	ErrInvalidMime = errors.New("imaging: invalid mime type")
	// ErrNotImage is returned when data does not decode to an image.
	ErrNotImage = errors.New("imaging: data is not an image")
	// ErrUnsupportedFormat is returned for formats without a decoder.
	ErrUnsupportedFormat = errors.New("imaging: unsupported image format")
	// ErrTooLarge is returned by Load when the source exceeds the size limit.
	ErrTooLarge = errors.New("imaging: source exceeds the size limit")
)

// Format is a raster format known to the loader.
type Format int

const (
	Unknown Format = iota
	PNG
	JPEG
	GIF
	BMP
	WEBP
	TIFF
	WBMP
	XBM
	XPM
	AVIF
)

var formatInfo = [...]struct {
	name, mime string
}{
	Unknown: {"unknown", ""},
	PNG:     {"png", "image/png"},
	JPEG:    {"jpeg", "image/jpeg"},
	GIF:     {"gif", "image/gif"},
	BMP:     {"bmp", "image/bmp"},
	WEBP:    {"webp", "image/webp"},
	TIFF:    {"tiff", "image/tiff"},
	WBMP:    {"wbmp", "image/vnd.wap.wbmp"},
	XBM:     {"xbm", "image/x-xbitmap"},
	XPM:     {"xpm", "image/x-xpixmap"},
	AVIF:    {"avif", "image/avif"},
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatInfo) {
		return "unknown"
	}
	return formatInfo[f].name
}

// MIME returns the media type of the format.
func (f Format) MIME() string {
	if f < 0 || int(f) >= len(formatInfo) {
		return ""
	}
	return formatInfo[f].mime
}

// aliases maps media types seen in the wild to their format.
var aliases = map[string]Format{
	"image/x-ms-bmp": BMP,
	"image/x-bmp":    BMP,
	"image/jpg":      JPEG,
	"image/x-xbm":    XBM,
	"image/x-xpm":    XPM,
}

// FormatOf returns the format of a media type.
func FormatOf(mime string) Format {
	for f := PNG; f <= AVIF; f++ {
		if f.MIME() == mime {
			return f
		}
	}
	return aliases[mime]
}

// Decoder turns encoded bytes into an image.
type Decoder interface {
	Decode(data []byte) (image.Image, error)
}

// Decoder returns the decoder of f, nil when f cannot be decoded.
func (f Format) Decoder() Decoder {
	switch f {
	case PNG:
		return pngDecoder{}
	case JPEG:
		return jpegDecoder{}
	case GIF:
		return gifDecoder{}
	case BMP:
		return bmpDecoder{}
	case WEBP:
		return webpDecoder{}
	case TIFF:
		return tiffDecoder{}
	case WBMP:
		return wbmpDecoder{}
	case XBM:
		return xbmDecoder{}
	case XPM:
		return xpmDecoder{}
	}
	return nil
}

type (
	pngDecoder  struct{}
	jpegDecoder struct{}
	gifDecoder  struct{}
	bmpDecoder  struct{}
	webpDecoder struct{}
	tiffDecoder struct{}
)

func (pngDecoder) Decode(data []byte) (image.Image, error)  { return png.Decode(bytes.NewReader(data)) }
func (jpegDecoder) Decode(data []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(data)) }
func (gifDecoder) Decode(data []byte) (image.Image, error)  { return gif.Decode(bytes.NewReader(data)) }
func (bmpDecoder) Decode(data []byte) (image.Image, error)  { return bmp.Decode(bytes.NewReader(data)) }
func (webpDecoder) Decode(data []byte) (image.Image, error) { return webp.Decode(bytes.NewReader(data)) }
func (tiffDecoder) Decode(data []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(data)) }
