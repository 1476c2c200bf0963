package planner

// Difficulty is a Habitica difficulty level.
type Difficulty int

const (
	Trivial Difficulty = iota + 1
	Easy
	Medium
	Hard
)

var weights = map[Difficulty]float64{
	Trivial: 0.1,
	Easy:    1,
	Medium:  1.5,
	Hard:    2,
}

// Valid reports whether d is one of the four known levels.
func (d Difficulty) Valid() bool {
	_, ok := weights[d]
	return ok
}

// Weight returns the Habitica priority for d. d must be Valid.
func Weight(d Difficulty) float64 {
	return weights[d]
}

// String returns the level name, or "Unknown".
func (d Difficulty) String() string {
	switch d {
	case Trivial:
		return "Trivial"
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return "Unknown"
}
