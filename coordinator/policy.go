package coordinator

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy is returned by Register for a malformed delivery
// policy (an interval policy with a non-positive window).
var ErrInvalidPolicy = errors.New("invalid delivery policy")

// PolicyKind selects the delivery strategy for a watch
type PolicyKind int

const (
	// PolicyImmediate delivers synchronously on every notification.
	// No coalescing; only for observers needing per-event fidelity.
	PolicyImmediate PolicyKind = iota

	// PolicyFrameCoalesced delivers at most once per frame. Multiple
	// notifications between frames collapse to one delivery carrying the
	// surface state at frame-callback time.
	PolicyFrameCoalesced

	// PolicyInterval delivers at most once per window, trailing edge:
	// the delivery fires after the window closes carrying latest state,
	// so the final position is always reported.
	PolicyInterval
)

// Policy is a watch delivery policy. Use the constructors.
type Policy struct {
	Kind  PolicyKind
	Every time.Duration // Window length, PolicyInterval only
}

// Immediate returns the synchronous per-notification policy.
func Immediate() Policy {
	return Policy{Kind: PolicyImmediate}
}

// FrameCoalesced returns the once-per-frame policy.
func FrameCoalesced() Policy {
	return Policy{Kind: PolicyFrameCoalesced}
}

// Interval returns the trailing-edge throttle policy with window d.
// Register rejects d <= 0 with ErrInvalidPolicy.
func Interval(d time.Duration) Policy {
	return Policy{Kind: PolicyInterval, Every: d}
}

func (p Policy) validate() error {
	switch p.Kind {
	case PolicyImmediate, PolicyFrameCoalesced:
		return nil
	case PolicyInterval:
		if p.Every <= 0 {
			return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidPolicy, p.Every)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown policy kind %d", ErrInvalidPolicy, p.Kind)
	}
}

func (p Policy) String() string {
	switch p.Kind {
	case PolicyImmediate:
		return "immediate"
	case PolicyFrameCoalesced:
		return "frame-coalesced"
	case PolicyInterval:
		return fmt.Sprintf("interval(%v)", p.Every)
	default:
		return fmt.Sprintf("policy(%d)", p.Kind)
	}
}
