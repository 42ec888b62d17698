package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is picture data normalized for web output.
type Image struct {
	Data   []byte
	MIME   string
	Ext    string
	Width  int
	Height int
}

// IsSVG sniffs data for an SVG document. SVG has no magic number so the check
// accepts leading whitespace, BOM and an XML prologue before the root element.
func IsSVG(data []byte) bool {
	head := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if bytes.HasPrefix(head, []byte("<svg")) {
		return true
	}
	if !bytes.HasPrefix(head, []byte("<?xml")) && !bytes.HasPrefix(head, []byte("<!DOCTYPE")) {
		return false
	}
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// Sniff detects media type from magic bytes.
func Sniff(data []byte) (ext, mime string) {
	if IsSVG(data) {
		return "svg", "image/svg+xml"
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || kind.Extension == "" {
		return "bin", "application/octet-stream"
	}
	return kind.Extension, kind.MIME.Value
}

// browsers render these natively, everything else gets converted
func webSafe(format string) bool {
	switch format {
	case "png", "jpeg", "gif", "webp":
		return true
	}
	return false
}

// Normalize decodes raw image bytes, converts formats browsers do not display
// and downscales pictures wider than maxWidth re-encoding the result. Original
// data is returned untouched when no change is needed and SVG always passes
// through as-is. maxWidth of zero disables scaling.
func Normalize(data []byte, maxWidth, jpegQuality int) (*Image, error) {
	if IsSVG(data) {
		return &Image{Data: data, MIME: "image/svg+xml", Ext: "svg"}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %w", err)
	}

	res := &Image{
		Data:   data,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}

	changed := false
	if maxWidth > 0 && res.Width > maxWidth {
		resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
		if resized == nil {
			return nil, fmt.Errorf("unable to resize %s image %dx%d", format, res.Width, res.Height)
		}
		img = resized
		res.Width = img.Bounds().Dx()
		res.Height = img.Bounds().Dy()
		changed = true
	}

	// BMP and TIFF are converted even when nothing else changes. Resized GIF
	// and WEBP come out as PNG, there are no encoders to write them back.
	target := format
	if !webSafe(format) || (changed && format != "png" && format != "jpeg") {
		target = "png"
		changed = true
	}
	if !changed {
		res.Ext, res.MIME = Sniff(data)
		return res, nil
	}

	out, err := Encode(img, target, jpegQuality)
	if err != nil {
		return nil, fmt.Errorf("unable to encode processed %s: %w", target, err)
	}
	res.Data = out
	if target == "jpeg" {
		res.Ext, res.MIME = "jpg", "image/jpeg"
	} else {
		res.Ext, res.MIME = "png", "image/png"
	}
	return res, nil
}

// Encode renders img into the named format, "jpeg" honors quality and carries
// a JFIF density header, everything else becomes maximally compressed PNG.
func Encode(img image.Image, format string, jpegQuality int) ([]byte, error) {
	if format == "jpeg" {
		return encodeJPEGForWeb(img, jpegQuality)
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
