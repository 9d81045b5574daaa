package imaging

import (
	"bytes"
	"net/http"
	"strings"
)

// Sniff returns the media type of data from its content, "" for no data.
// Signatures the HTTP sniffer does not know (TIFF, AVIF, XBM, XPM, WBMP)
// are checked first.
func Sniff(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	switch {
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return TIFF.MIME()
	case isAVIF(data):
		return AVIF.MIME()
	case isXPM(data):
		return XPM.MIME()
	case isXBM(data):
		return XBM.MIME()
	}
	mime := http.DetectContentType(data)
	if mime == "application/octet-stream" && isWBMP(data) {
		return WBMP.MIME()
	}
	return mime
}

// checkMime validates a sniffed media type and strips its parameters.
func checkMime(mime string) (string, error) {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.TrimSpace(mime)
	if mime == "" || !strings.Contains(mime, "/") {
		return "", ErrInvalidMime
	}
	return mime, nil
}

func isAVIF(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	brand := string(data[8:12])
	return brand == "avif" || brand == "avis"
}

func isXPM(data []byte) bool {
	head := data[:min(len(data), 64)]
	return bytes.Contains(head, []byte("/* XPM */"))
}

func isXBM(data []byte) bool {
	head := data[:min(len(data), 256)]
	return bytes.HasPrefix(bytes.TrimSpace(head), []byte("#define")) && bytes.Contains(head, []byte("_width"))
}

// isWBMP checks a type 0 header followed by non-zero dimensions.
func isWBMP(data []byte) bool {
	if len(data) < 4 || data[0] != 0 || data[1] != 0 {
		return false
	}
	w, n, ok := readMultiByte(data[2:])
	if !ok || w == 0 {
		return false
	}
	h, _, ok := readMultiByte(data[2+n:])
	return ok && h > 0
}
