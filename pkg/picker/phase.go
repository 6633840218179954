package picker

// Phase is a step of the pick-and-place sequence.
type Phase int

// Phases in the order they run for each item. PhaseReturn runs once after
// the last item.
const (
	PhaseIdle Phase = iota
	PhaseRaise
	PhaseOverItem
	PhaseGrip
	PhaseLift
	PhaseOverPlace
	PhaseRelease
	PhaseReturn
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseIdle:      "idle",
	PhaseRaise:     "raise",
	PhaseOverItem:  "over_item",
	PhaseGrip:      "grip",
	PhaseLift:      "lift",
	PhaseOverPlace: "over_place",
	PhaseRelease:   "release",
	PhaseReturn:    "return",
	PhaseDone:      "done",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Carrying reports whether the arm holds an item during this phase.
func (p Phase) Carrying() bool {
	return p == PhaseLift || p == PhaseOverPlace || p == PhaseRelease
}
