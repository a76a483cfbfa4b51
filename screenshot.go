package choreo

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next rendered frame. The PNG
// is written to ScreenshotDir with a timestamped, sequence-numbered
// filename. Safe to call from entity draw code or between ticks.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// readFrame reads the framebuffer into buf, growing it to the frame size
// when needed, and returns the filled slice. The export sink and the
// screenshot path share this so each reuses one buffer across frames.
func readFrame(screen *ebiten.Image, buf []byte) []byte {
	bounds := screen.Bounds()
	need := 4 * bounds.Dx() * bounds.Dy()
	if cap(buf) < need {
		buf = make([]byte, need)
	}
	buf = buf[:need]
	screen.ReadPixels(buf)
	return buf
}

// flushScreenshots drains the queue against the frame that was just
// rendered. Failures are logged and the labels dropped; a missing capture
// does not invalidate playback.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "[choreo] screenshot: mkdir %s: %v\n", s.ScreenshotDir, err)
		return
	}

	bounds := screen.Bounds()
	s.frameScratch = readFrame(screen, s.frameScratch)
	img := unpremultiply(s.frameScratch, bounds.Dx(), bounds.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		s.screenshotSeq++
		name := fmt.Sprintf("%s_%03d_%s.png", stamp, s.screenshotSeq, sanitizeLabel(label))
		if err := savePNG(filepath.Join(s.ScreenshotDir, name), img); err != nil {
			fmt.Fprintf(os.Stderr, "[choreo] screenshot: %v\n", err)
		}
	}
}

// unpremultiply converts a premultiplied RGBA readback buffer into a
// straight-alpha image suitable for PNG encoding. Fully transparent and
// fully opaque pixels pass through unchanged; partial alpha divides the
// color channels back out with rounding.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+4 <= n; i += 4 {
		a := pixels[i+3]
		img.Pix[i+3] = a
		switch a {
		case 0, 255:
			copy(img.Pix[i:i+3], pixels[i:i+3])
		default:
			for j := 0; j < 3; j++ {
				v := (int(pixels[i+j])*255 + int(a)/2) / int(a)
				if v > 255 {
					v = 255
				}
				img.Pix[i+j] = uint8(v)
			}
		}
	}
	return img
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel maps characters that are unsafe in file names to
// underscores. Empty or whitespace-only labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
