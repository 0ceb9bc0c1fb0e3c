// Package debug provides development utilities around the pipeline.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// FrameCapture writes presented frames to timestamped PNG files.
type FrameCapture struct {
	outputDir string
	prefix    string
}

// NewFrameCapture creates a capture handler writing into outputDir.
func NewFrameCapture(outputDir, prefix string) *FrameCapture {
	return &FrameCapture{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// SetOutputDir sets the output directory for captures.
func (fc *FrameCapture) SetOutputDir(dir string) {
	fc.outputDir = dir
}

// CaptureFromPixels saves raw RGBA pixel data as read back from the
// framebuffer: width*height*4 bytes, bottom row first. The image is
// flipped vertically during the copy since OpenGL's origin is the
// bottom-left corner.
func (fc *FrameCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcY := height - 1 - y
		srcOffset := srcY * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return fc.save(img)
}

// CaptureFromImage saves an already-assembled image.
func (fc *FrameCapture) CaptureFromImage(img image.Image) (string, error) {
	return fc.save(img)
}

// GenerateFilename returns the path the next capture would use,
// without saving anything.
func (fc *FrameCapture) GenerateFilename() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", fc.prefix, timestamp)
	if fc.outputDir != "" {
		filename = filepath.Join(fc.outputDir, filename)
	}
	return filename
}

func (fc *FrameCapture) save(img image.Image) (string, error) {
	if fc.outputDir != "" {
		if err := os.MkdirAll(fc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := fc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}
