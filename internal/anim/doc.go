// Package anim is a small tweening and scroll-binding engine.
//
//   - [Tween]: interpolates [Property] values to absolute targets with an [Ease],
//     optional repeats and yoyo
//   - [Timeline]: orders tweens with [After], [WithPrevious] or [At] offsets,
//     with delay, repeat and repeat delay
//   - [Engine]: advances registered animations on a caller-owned clock
//   - [ScrollTrigger]: maps scroll position within a [Region] to the progress
//     of a [Scrubbable], immediately or with scrub lag
//
// # Thread Safety
//
// Animations write their properties from whichever goroutine calls
// [Engine.Advance]. Only one goroutine should advance a given engine.
package anim
