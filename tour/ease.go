/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import "math"

const (
	// OverlayStep is the per-frame fraction of the remaining overlay fade.
	OverlayStep = 0.12
	// OverlaySnap is how close the overlay must be to its target before it lands exactly.
	OverlaySnap = 1.0
)

// Ease moves current toward target by factor of the remaining distance,
// landing on target once the remainder is within snap.
func Ease(current, target, factor, snap float64) float64 {
	next := current + (target-current)*factor
	if math.Abs(target-next) <= snap {
		return target
	}

	return next
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
