package imageio

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Format is an output file format
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat accepts a format name or file extension, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(name, "."))); f {
	case FormatPPM, FormatPNG, FormatBMP:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (want ppm, png or bmp)", name)
	}
}

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/x-portable-pixmap"
	}
}

func checkFrame(width, height int, frame []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(frame) != width*height*4 {
		return fmt.Errorf("frame has %d bytes, want %d for %dx%d RGBA", len(frame), width*height*4, width, height)
	}
	return nil
}

// WritePPM writes an RGBA frame as a plain-text P3 image, one "r g b" line per pixel
func WritePPM(w io.Writer, width, height int, frame []byte) error {
	if err := checkFrame(width, height, frame); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height)
	for i := 0; i < len(frame); i += 4 {
		fmt.Fprintf(bw, "%d %d %d\n", frame[i], frame[i+1], frame[i+2])
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// FrameToImage wraps a copy of an RGBA frame in an image.RGBA
func FrameToImage(width, height int, frame []byte) (*image.RGBA, error) {
	if err := checkFrame(width, height, frame); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, frame)
	return img, nil
}

// WritePNG encodes an RGBA frame as PNG
func WritePNG(w io.Writer, width, height int, frame []byte) error {
	img, err := FrameToImage(width, height, frame)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WriteBMP encodes an RGBA frame as BMP
func WriteBMP(w io.Writer, width, height int, frame []byte) error {
	img, err := FrameToImage(width, height, frame)
	if err != nil {
		return err
	}
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode BMP: %w", err)
	}
	return nil
}

// Write encodes the frame in the given format
func Write(w io.Writer, format Format, width, height int, frame []byte) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, width, height, frame)
	case FormatPNG:
		return WritePNG(w, width, height, frame)
	case FormatBMP:
		return WriteBMP(w, width, height, frame)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// SaveFrame writes the frame to path, creating parent directories as needed
func SaveFrame(path string, format Format, width, height int, frame []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Write(file, format, width, height, frame); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// LoadFrame decodes a PNG, JPEG or BMP file into an RGBA frame
func LoadFrame(path string) (width, height int, frame []byte, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects format from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	frame = make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			i := (y*width + x) * 4
			frame[i] = uint8(r >> 8)
			frame[i+1] = uint8(g >> 8)
			frame[i+2] = uint8(b >> 8)
			frame[i+3] = uint8(a >> 8)
		}
	}

	return width, height, frame, nil
}
