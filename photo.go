package feathertk

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// converted maps file extensions Tk's photo type cannot read to a decoder.
// Everything else (PNG, GIF, PPM) is read by Tk from the file directly.
var converted = map[string]func(io.Reader) (image.Image, error){
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
}

// photoSource returns the option and value that load path into a photo
// image: "-file" and the path, or "-data" and base64 PNG for converted
// formats.
func (a *App) photoSource(path string) (option, value string, err error) {
	decode, ok := converted[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "-file", path, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("feathertk: open image: %w", err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return "", "", fmt.Errorf("feathertk: decode image %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", "", fmt.Errorf("feathertk: encode image %s: %w", path, err)
	}
	a.log.Debug().
		Str("path", path).
		Int("bytes", buf.Len()).
		Log("converted image to png")
	return "-data", base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
