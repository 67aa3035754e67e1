// Package viz renders scenes in the terminal.
//
// The package draws onto a braille [Canvas] with per-cell colors through a
// look-at [Camera], and provides an interactive [Viewer] built on Bubble Tea:
//
//   - [RenderScene]: stream paths, the sun and markers, far to near
//   - [Viewer]: steps through renders with history replay
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space  - Play/Pause
//	N / ]  - Next render
//	P / [  - Previous render (replay)
//	Arrows - Orbit the camera
//	+ / -  - Zoom
//	T      - Cycle color themes
//	?      - Show help overlay
//
// Canvases can also be rasterized and written as GIF animations.
package viz
