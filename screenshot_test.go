package choreo

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"zoom-in", "zoom-in"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := NewScene()
	s.Screenshot("a")
	s.Screenshot("b")
	s.Screenshot("c")
	if len(s.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(s.screenshotQueue))
	}
	if s.screenshotQueue[0] != "a" || s.screenshotQueue[1] != "b" || s.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", s.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := NewScene()
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func TestUnpremultiply(t *testing.T) {
	// One row of four pixels: opaque, transparent, half alpha, and a
	// premultiplied value exceeding its alpha.
	pixels := []byte{
		10, 20, 30, 255,
		5, 6, 7, 0,
		100, 64, 0, 128,
		200, 0, 0, 100,
	}
	img := unpremultiply(pixels, 4, 1)

	want := []byte{
		10, 20, 30, 255, // opaque passes through
		5, 6, 7, 0, // transparent passes through
		199, 128, 0, 128, // divided back out with rounding
		255, 0, 0, 100, // clamped to 255
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestUnpremultiplyShortBuffer(t *testing.T) {
	// A buffer shorter than the image only fills what it covers.
	img := unpremultiply([]byte{1, 2, 3, 255}, 2, 1)
	if img.Pix[0] != 1 || img.Pix[3] != 255 {
		t.Errorf("first pixel = %v", img.Pix[:4])
	}
	if img.Pix[4] != 0 || img.Pix[7] != 0 {
		t.Errorf("uncovered pixel = %v, want zeros", img.Pix[4:8])
	}
}
