package choreo

import (
	"bufio"
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/fogleman/ease"
)

func TestEncoderArgs(t *testing.T) {
	cfg := ExportConfig{Width: 640, Height: 480, FPS: 60, OutFile: "clip.mp4", CRF: 20}
	args := strings.Join(encoderArgs(cfg), " ")

	for _, want := range []string{
		"-f rawvideo",
		"-video_size 640x480",
		"-pixel_format rgba",
		"-framerate 60",
		"-i -",
		"-vf vflip,format=yuv420p",
		"-an",
		"-c:v libx264",
		"-preset fast",
		"-crf 20",
		"-tune animation",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q: %s", want, args)
		}
	}
	if !strings.HasSuffix(args, "clip.mp4") {
		t.Errorf("output file should be the final argument: %s", args)
	}
}

func TestExportConfigDefaults(t *testing.T) {
	cfg := ExportConfig{}.withDefaults()
	if cfg.FPS != 60 {
		t.Errorf("FPS = %d, want 60", cfg.FPS)
	}
	if cfg.OutFile != "out.mp4" {
		t.Errorf("OutFile = %q, want out.mp4", cfg.OutFile)
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpegPath = %q, want ffmpeg", cfg.FFmpegPath)
	}
}

func TestWriteFrameFlipsRows(t *testing.T) {
	var out bytes.Buffer
	enc := &Encoder{buf: bufio.NewWriter(&out), width: 2, height: 2}

	pixels := make([]byte, enc.FrameSize())
	for i := range pixels {
		pixels[i] = byte(i)
	}
	if err := enc.WriteFrame(pixels); err != nil {
		t.Fatal(err)
	}

	got := out.Bytes()
	if len(got) != enc.FrameSize() {
		t.Fatalf("wrote %d bytes, want %d", len(got), enc.FrameSize())
	}
	// Bottom row first.
	if !bytes.Equal(got[:8], pixels[8:]) || !bytes.Equal(got[8:], pixels[:8]) {
		t.Errorf("rows not flipped: %v", got)
	}
}

func TestWriteFrameRejectsWrongSize(t *testing.T) {
	var out bytes.Buffer
	enc := &Encoder{buf: bufio.NewWriter(&out), width: 4, height: 4}

	if err := enc.WriteFrame(make([]byte, 7)); err == nil {
		t.Error("expected error for undersized frame")
	}
}

func TestExportFrameCount(t *testing.T) {
	// A 970 ms scene at 60 fps yields ceil(970 / (1000/60)) = 59 frames,
	// with done reported on the final frame. This mirrors the export loop:
	// tick, write a frame, stop once the scene reports done.
	s := NewScene()
	s.Wait(400)
	s.Move(10, 0, 0, 570, ease.Linear)

	clk := &fixedClock{step: 1000.0 / 60}
	frames := 0
	for {
		now, due := clk.tick()
		if !due {
			t.Fatal("fixed clock must always be due")
		}
		s.Tick(now)
		frames++ // one full frame buffer per tick
		if s.Done() {
			break
		}
		if frames > 1000 {
			t.Fatal("export loop did not terminate")
		}
	}

	want := int(math.Ceil(970 / (1000.0 / 60)))
	if frames != want {
		t.Errorf("exported %d frames, want %d", frames, want)
	}
	// The final state is fully applied on the last frame.
	vecNear(t, s.Projection().Apply(Vec3{}), Vec3{X: 10})
}

func TestFrameSize(t *testing.T) {
	enc := &Encoder{width: 1920, height: 1080}
	if got := enc.FrameSize(); got != 1920*1080*4 {
		t.Errorf("FrameSize = %d, want %d", got, 1920*1080*4)
	}
}
