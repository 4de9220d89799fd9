package tick

import "github.com/osksim/engine/model"

// Method is the resolved, pass-aware form of model.Method: it knows how
// many passes it needs and what Dt each pass runs at (§4.1).
type Method int

const (
	MethodEuler Method = iota
	MethodRK2
	MethodRK4
	MethodMerson
)

func methodFor(m model.Method) Method {
	switch m {
	case model.Euler:
		return MethodEuler
	case model.RK2:
		return MethodRK2
	case model.RK4:
		return MethodRK4
	case model.Merson:
		return MethodMerson
	default:
		// Defensive: compiler validation should have already rejected an
		// unrecognized solver. Euler is the safest silent fallback.
		return MethodEuler
	}
}

// Passes returns how many passes per primary step the method needs.
func (m Method) Passes() int {
	switch m {
	case MethodEuler:
		return 1
	case MethodRK2:
		return 2
	case MethodRK4:
		return 4
	case MethodMerson:
		return 5
	default:
		return 1
	}
}

// dtForPass returns the intra-step size for the given pass, per the §4.1
// table. Euler and Merson run every pass at the full primary step.
func (m Method) dtForPass(kpass int, dtp float64) float64 {
	switch m {
	case MethodRK2:
		if kpass == 0 {
			return dtp / 2
		}
		return dtp
	case MethodRK4:
		if kpass <= 1 {
			return dtp / 2
		}
		return dtp
	default: // Euler, Merson
		return dtp
	}
}
