// Package viz runs a helix stage in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: frame loop, scroll input and the status panel
//   - [Run]: full-screen or inline program
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	J/K   - Scroll the page (mouse wheel works too)
//	Space - Pause/Resume the pulses
//	B     - Toggle bloom
//	M     - Switch between colour half-blocks and braille
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Frames are captured at full framebuffer resolution while recording and
// written as an animated GIF when recording stops or the program quits.
package viz
