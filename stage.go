package stageten

// Stage represents one of the ten requirement profiles a player must clear,
// one per round, to advance toward winning.
type Stage int

const (
	FirstStage Stage = 1
	FinalStage Stage = 10
)

// Next returns the following stage. The second return is false at stage ten.
func (s Stage) Next() (Stage, bool) {
	if s >= FinalStage {
		return s, false
	}
	return s + 1, true
}

// RequirementKind discriminates the requirement variants
type RequirementKind string

const (
	NumberSetRequirement RequirementKind = "number_set"
	ColorSetRequirement  RequirementKind = "color_set"
	RunRequirement       RequirementKind = "run"
)

// Requirement is an abstract target a stage demands, satisfied by a
// concrete completed meld.
type Requirement struct {
	Kind   RequirementKind `json:"kind"`
	Count  int             `json:"count,omitempty"`
	Length int             `json:"length,omitempty"`
}

// SetOf is a number-set requirement of the given size
func SetOf(count int) Requirement {
	return Requirement{Kind: NumberSetRequirement, Count: count}
}

// ColorSetOf is a color-set requirement of the given size
func ColorSetOf(count int) Requirement {
	return Requirement{Kind: ColorSetRequirement, Count: count}
}

// RunOf is a run requirement of the given length
func RunOf(length int) Requirement {
	return Requirement{Kind: RunRequirement, Length: length}
}

var stageRequirements = map[Stage][]Requirement{
	1:  {SetOf(3), SetOf(3)},
	2:  {SetOf(3), RunOf(4)},
	3:  {SetOf(4), RunOf(4)},
	4:  {RunOf(7)},
	5:  {RunOf(8)},
	6:  {RunOf(9)},
	7:  {SetOf(4), SetOf(4)},
	8:  {ColorSetOf(7)},
	9:  {SetOf(5), SetOf(2)},
	10: {SetOf(5), SetOf(3)},
}

// Requirements returns the ordered requirement list for the stage
func (s Stage) Requirements() []Requirement {
	reqs := stageRequirements[s]
	out := make([]Requirement, len(reqs))
	copy(out, reqs)
	return out
}
