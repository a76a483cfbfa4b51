// Package choreo authors and renders procedural animations on top of
// [Ebitengine].
//
// A [Scene] holds drawable entities and a timeline of time-scheduled
// property transitions (tweens). A driver loop samples the timeline against
// a clock and renders each frame either to an interactive window or to a
// raw frame stream piped to an external video encoder.
//
// # Quick start
//
//	scene := choreo.NewScene()
//	scene.Add(choreo.NewRegularPolygon(6, 200))
//
//	scene.Scale(2, 800, ease.InOutCubic)
//	scene.Rotate(math.Pi/2, 800, nil)
//	scene.Wait(400)
//	scene.Move(150, 0, 0, 800, nil)
//
//	// Live playback:
//	choreo.Run(scene, choreo.RunConfig{Title: "demo", Width: 1280, Height: 720})
//
//	// Or deterministic video export:
//	choreo.Export(scene, choreo.ExportConfig{Width: 1920, Height: 1080, OutFile: "demo.mp4"})
//
// # Timeline model
//
// Transform ops ([Scene.Scale], [Scene.Rotate], [Scene.Move]) and
// [Scene.Wait] append tweens to the scene's [Timeline]; each new batch is
// chained after the end of the previous one, so sequential calls build a
// sequential animation. All ops animate one shared projection matrix, which
// the render pipeline applies to every entity's geometry. Easing functions
// come from [github.com/fogleman/ease] and are consumed as plain
// func(float64) float64 values.
//
// Entity-local motion that should run independently of the timeline uses
// [TweenGroup] (backed by [gween]) and [Scene.Play].
//
// Scripts are an alternative to calling ops from code: [LoadScript] parses
// a YAML step sequence and [Script.Apply] enqueues it.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package choreo
