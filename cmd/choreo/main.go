// Command choreo plays or exports a procedural animation. With no script it
// runs a built-in demo sequence; with --script it loads a YAML step list.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrel/choreo"
)

var (
	width      int
	height     int
	resizable  bool
	showFPS    bool
	updateHz   float64
	scriptPath string

	fps     int
	outFile string
	crf     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "choreo",
		Short: "procedural animation playback and export",
	}
	rootCmd.PersistentFlags().IntVar(&width, "width", 1280, "window or export width")
	rootCmd.PersistentFlags().IntVar(&height, "height", 720, "window or export height")
	rootCmd.PersistentFlags().StringVar(&scriptPath, "script", "", "YAML animation script (default: built-in demo)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play the animation in a window",
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&resizable, "resizable", true, "allow window resizing")
	playCmd.Flags().BoolVar(&showFPS, "fps-overlay", false, "show the frame rate overlay")
	playCmd.Flags().Float64Var(&updateHz, "update-hz", choreo.DefaultUpdateHz, "logical update rate ceiling")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the animation to a video file",
		RunE:  runExport,
	}
	exportCmd.Flags().IntVar(&fps, "fps", 60, "export frame rate")
	exportCmd.Flags().StringVar(&outFile, "out", "out.mp4", "output video file")
	exportCmd.Flags().IntVar(&crf, "crf", 18, "encoder quality factor")

	rootCmd.AddCommand(playCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	scene, err := buildScene()
	if err != nil {
		return err
	}
	// Window or context creation failure is fatal; nothing can render
	// without it, so the error propagates out and exits the process.
	return choreo.Run(scene, choreo.RunConfig{
		Title:     "choreo",
		Width:     width,
		Height:    height,
		Resizable: resizable,
		UpdateHz:  updateHz,
		ShowFPS:   showFPS,
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	scene, err := buildScene()
	if err != nil {
		return err
	}
	if err := choreo.Export(scene, choreo.ExportConfig{
		Width:   width,
		Height:  height,
		FPS:     fps,
		OutFile: outFile,
		CRF:     crf,
	}); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Println("wrote", outFile)
	return nil
}

// buildScene creates the demo entities and enqueues either the scripted or
// the built-in animation.
func buildScene() (*choreo.Scene, error) {
	scene := choreo.NewScene()

	hexagon := choreo.NewRegularPolygon(6, 180)
	hexagon.Fill = choreo.Color{R: 0.2, G: 0.45, B: 0.8, A: 0.6}
	scene.Add(hexagon)

	triangle := choreo.NewRegularPolygon(3, 90)
	triangle.Geom().Position = choreo.Vec3{X: 260}
	triangle.Stroke = choreo.Color{R: 1, G: 0.6, B: 0.2, A: 1}
	scene.Add(triangle)

	dots := choreo.NewPointCloud([]choreo.Vec3{
		{X: -320, Y: -320}, {X: 320, Y: -320}, {X: 320, Y: 320}, {X: -320, Y: 320},
	})
	scene.Add(dots)

	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		script, err := choreo.LoadScript(data)
		if err != nil {
			return nil, err
		}
		script.Apply(scene)
		return scene, nil
	}

	scene.Scale(1.5, 900, nil)
	scene.Rotate(math.Pi/3, 900, nil)
	scene.Wait(300)
	scene.Move(120, -60, 0, 900, nil)
	scene.Scale(0.75, 700, nil)
	return scene, nil
}
