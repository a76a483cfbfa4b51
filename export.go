package choreo

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
)

// ExportConfig configures offline export to a video file.
type ExportConfig struct {
	Width  int
	Height int

	// FPS is the virtual frame rate; the scene clock advances by exactly
	// 1000/FPS ms per frame. Zero means 60.
	FPS int

	// OutFile is the encoder's output path. Zero means "out.mp4".
	OutFile string

	// CRF is the constant quality factor passed to the encoder. Zero means 18.
	CRF int

	// FFmpegPath locates the encoder binary. Zero means "ffmpeg" on PATH.
	FFmpegPath string
}

func (cfg ExportConfig) withDefaults() ExportConfig {
	if cfg.Width <= 0 {
		cfg.Width = 1920
	}
	if cfg.Height <= 0 {
		cfg.Height = 1080
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.OutFile == "" {
		cfg.OutFile = "out.mp4"
	}
	if cfg.CRF <= 0 {
		cfg.CRF = 18
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	return cfg
}

// encoderArgs builds the ffmpeg argument list: raw RGBA video on stdin at
// the export size and rate, H.264 output with a fast preset, constant
// quality, and the animation tune. The vflip filter matches the bottom-up
// row order WriteFrame emits.
func encoderArgs(cfg ExportConfig) []string {
	return []string{
		"-y",
		"-f", "rawvideo",
		"-video_size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-pixel_format", "rgba",
		"-framerate", strconv.Itoa(cfg.FPS),
		"-i", "-",
		"-vf", "vflip,format=yuv420p",
		"-an",
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", strconv.Itoa(cfg.CRF),
		"-tune", "animation",
		cfg.OutFile,
	}
}

// Encoder wraps a spawned external video encoder consuming raw RGBA frames
// on its standard input. A slow encoder applies backpressure: WriteFrame
// blocks until the process drains the pipe.
type Encoder struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	buf   *bufio.Writer

	width, height int
}

// StartEncoder spawns the encoder process for the given config.
func StartEncoder(cfg ExportConfig) (*Encoder, error) {
	cfg = cfg.withDefaults()

	cmd := exec.Command(cfg.FFmpegPath, encoderArgs(cfg)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encoder stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}
	return &Encoder{
		cmd:    cmd,
		stdin:  stdin,
		buf:    bufio.NewWriterSize(stdin, 1<<16),
		width:  cfg.Width,
		height: cfg.Height,
	}, nil
}

// FrameSize returns the exact byte length WriteFrame expects.
func (e *Encoder) FrameSize() int { return e.width * e.height * 4 }

// WriteFrame streams one RGBA frame to the encoder and flushes it. pixels
// must hold exactly width*height*4 bytes in top-down row order; rows are
// written bottom-up so the encoder's vflip restores an upright image. An
// encoder that died shows up here as a write error; export treats that as
// fatal since a truncated file is not a useful artifact.
func (e *Encoder) WriteFrame(pixels []byte) error {
	if len(pixels) != e.FrameSize() {
		return fmt.Errorf("frame is %d bytes, want %d", len(pixels), e.FrameSize())
	}
	stride := e.width * 4
	for y := e.height - 1; y >= 0; y-- {
		if _, err := e.buf.Write(pixels[y*stride : (y+1)*stride]); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}
	if err := e.buf.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// Close closes the encoder's input stream and waits for the process to
// exit, so the output file is fully written before Close returns.
func (e *Encoder) Close() error {
	if err := e.stdin.Close(); err != nil {
		e.cmd.Wait()
		return fmt.Errorf("close encoder input: %w", err)
	}
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("encoder exit: %w", err)
	}
	return nil
}

// encoderSink reads each rendered frame back from the framebuffer and
// streams it to the encoder.
type encoderSink struct {
	enc    *Encoder
	pixels []byte
}

func (s *encoderSink) flush(screen *ebiten.Image) error {
	s.pixels = readFrame(screen, s.pixels)
	return s.enc.WriteFrame(s.pixels)
}

// Export renders the scene at a fixed virtual timestep and streams every
// frame to the external encoder, producing a deterministic video regardless
// of wall-clock speed. It returns once the scene reports done (or the
// window is closed), the pipe is closed, and the encoder has exited.
//
// A timeline whose length is an exact multiple of the frame step gets one
// extra frame: the last tween is still current at its own end time, so the
// frame at that instant is written before done is observed.
func Export(scene *Scene, cfg ExportConfig) error {
	cfg = cfg.withDefaults()

	enc, err := StartEncoder(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(fmt.Sprintf("choreo — exporting %s", cfg.OutFile))
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowClosingHandled(true)
	// Export is not gated on the display; render as fast as the encoder
	// accepts frames.
	ebiten.SetVsyncEnabled(false)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := &game{
		scene:       scene,
		clock:       &fixedClock{step: 1000 / float64(cfg.FPS)},
		sink:        &encoderSink{enc: enc},
		width:       cfg.Width,
		height:      cfg.Height,
		fixedLayout: true,
		exporting:   true,
	}

	runErr := ebiten.RunGame(g)
	closeErr := enc.Close()

	if runErr != nil {
		return runErr
	}
	return closeErr
}
