package tetris

// Kicker returns the ordered wall kick candidates for a rotation attempt.
type Kicker interface {
	Kicks(k Kind, from Rotation, d RotateDirection) []Offset
}

const kickCount = 4

// KickTable implements the SRS+ wall kicks. Based on https://tetris.wiki/Super_Rotation_System
// The (0, 0) test is not part of the tables: the engine always tries it first.
type KickTable struct {
	// clockwise kicks for J, L, S, T and Z keyed by the starting rotation.
	// counter-clockwise kicks are the kicks of the destination rotation with the opposite sign.
	std [4][kickCount]Offset
	// I kicks keyed by the starting rotation and direction.
	i [4][2][kickCount]Offset
}

// SRSPlus returns the SRS+ kick table.
func SRSPlus() *KickTable {
	return &KickTable{
		std: [4][kickCount]Offset{
			North: {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 0>R
			East:  {{1, 0}, {1, -1}, {0, 2}, {1, 2}},     // R>2
			South: {{1, 0}, {1, 1}, {0, -2}, {1, -2}},    // 2>L
			West:  {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},  // L>0
		},
		i: [4][2][kickCount]Offset{
			North: {
				{{-2, 0}, {1, 0}, {1, 2}, {-2, -1}}, // 0>R
				{{2, 0}, {-1, 0}, {-1, 2}, {2, -1}}, // 0>L
			},
			East: {
				{{-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // R>2
				{{2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // R>0
			},
			South: {
				{{2, 0}, {-1, 0}, {2, 1}, {-1, -1}}, // 2>L
				{{-2, 0}, {1, 0}, {-2, 1}, {1, -1}}, // 2>R
			},
			West: {
				{{-2, 0}, {1, 0}, {-2, 1}, {1, -2}}, // L>0
				{{1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // L>2
			},
		},
	}
}

func (t *KickTable) Kicks(k Kind, from Rotation, d RotateDirection) []Offset {
	switch k {
	case O:
		// the O shape doesn't need kicks.
		return []Offset{{}}
	case I:
		dir := 0
		if d == CounterClockwise {
			dir = 1
		}
		kicks := t.i[from.normalize()][dir]
		return kicks[:]
	default:
		if d != CounterClockwise {
			kicks := t.std[from.normalize()]
			return kicks[:]
		}
		kicks := t.std[from.Rotate(d)]
		out := make([]Offset, 0, kickCount)
		for _, o := range kicks {
			out = append(out, o.Neg())
		}
		return out
	}
}
