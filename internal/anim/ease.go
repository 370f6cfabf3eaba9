package anim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

var (
	ErrUnknownEase    = errors.New("anim: unknown ease")
	ErrInvalidAnchor  = errors.New("anim: invalid scroll anchor")
	ErrInvalidTrigger = errors.New("anim: invalid scroll trigger")
)

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(t float64) float64

// powerN curves follow the usual naming: power1 is quadratic, power4 quintic.
var eases = map[string]Ease{
	"none":         ease.Linear,
	"linear":       ease.Linear,
	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inOut": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inOut": ease.InOutCubic,
	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inOut": ease.InOutQuart,
	"power4.in":    ease.InQuint,
	"power4.out":   ease.OutQuint,
	"power4.inOut": ease.InOutQuint,
	"sine.in":      ease.InSine,
	"sine.out":     ease.OutSine,
	"sine.inOut":   ease.InOutSine,
}

// ParseEase resolves an ease by name. The empty name is "none".
func ParseEase(name string) (Ease, error) {
	if name == "" {
		return ease.Linear, nil
	}
	if e, ok := eases[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
}

// MustEase is ParseEase for names fixed at compile time.
func MustEase(name string) Ease {
	e, err := ParseEase(name)
	if err != nil {
		panic(err)
	}
	return e
}

// EaseNames lists the registered names in sorted order.
func EaseNames() []string {
	names := make([]string, 0, len(eases))
	for name := range eases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
