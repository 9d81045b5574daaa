package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/laurentmuller/calculation-sub010/document"
)

// maxLoadSize bounds the bytes read by Load.
var maxLoadSize int64 = 32 << 20

// Decode sniffs the format of data and decodes it.
func Decode(data []byte) (image.Image, Format, error) {
	mime, err := checkMime(Sniff(data))
	if err != nil {
		return nil, Unknown, err
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, Unknown, fmt.Errorf("%w: %s", ErrNotImage, mime)
	}
	f := FormatOf(mime)
	img, err := decodeAs(data, f)
	return img, f, err
}

func decodeAs(data []byte, f Format) (image.Image, error) {
	dec := f.Decoder()
	if dec == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	img, err := dec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotImage, f, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s decoded to an empty image", ErrNotImage, f)
	}
	return img, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imaging: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToPNG decodes data in any supported format and encodes it as PNG.
func ToPNG(data []byte) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// convert decodes data with the decoder of f, whatever the sniffed type, as
// long as the content has a well formed media type.
func convert(data []byte, f Format) ([]byte, error) {
	if _, err := checkMime(Sniff(data)); err != nil {
		return nil, err
	}
	img, err := decodeAs(data, f)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

func FromAVIF(data []byte) ([]byte, error) { return convert(data, AVIF) }
func FromBMP(data []byte) ([]byte, error)  { return convert(data, BMP) }
func FromGIF(data []byte) ([]byte, error)  { return convert(data, GIF) }
func FromTIFF(data []byte) ([]byte, error) { return convert(data, TIFF) }
func FromWBMP(data []byte) ([]byte, error) { return convert(data, WBMP) }
func FromWEBP(data []byte) ([]byte, error) { return convert(data, WEBP) }
func FromXBM(data []byte) ([]byte, error)  { return convert(data, XBM) }
func FromXPM(data []byte) ([]byte, error)  { return convert(data, XPM) }

// Load reads source, an http(s) URL or a file path.
func Load(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("imaging: %w", err)
		}
		defer f.Close()
		return readLimited(f, source)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("imaging: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imaging: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imaging: get %s: %s", source, resp.Status)
	}
	return readLimited(resp.Body, source)
}

func readLimited(r io.Reader, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxLoadSize+1))
	if err != nil {
		return nil, fmt.Errorf("imaging: read %s: %w", source, err)
	}
	if int64(len(data)) > maxLoadSize {
		return nil, fmt.Errorf("%w: %s is over %d bytes", ErrTooLarge, source, maxLoadSize)
	}
	return data, nil
}

// Embed converts data to PNG, registers it under name and draws it. See
// document.Image for the sizing rules of w and h.
func Embed(d *document.Document, name string, data []byte, x, y, w, h float64, link document.Link) error {
	pngData, err := ToPNG(data)
	if err != nil {
		return err
	}
	if _, err := d.RegisterImage(name, pngData); err != nil {
		return err
	}
	d.Image(name, x, y, w, h, link)
	return d.Err()
}
