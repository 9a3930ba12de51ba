package cycle

// dayRange is an inclusive range of cycle days; empty when start > end.
type dayRange struct {
	start int
	end   int
}

func (r dayRange) contains(day int) bool {
	return day >= r.start && day <= r.end
}

// PhaseWindows holds the day ranges used to classify a cycle day.
type PhaseWindows struct {
	OvulationDay int
	menstruation dayRange
	ovulation    dayRange
	luteal       dayRange
}

// OvulationDay estimates ovulation as the day a fixed luteal phase before the cycle end.
func OvulationDay(cycleLength int) int {
	return max(1, cycleLength-LutealLength)
}

// NewPhaseWindows partitions a cycle into its phase windows.
func NewPhaseWindows(cycleLength, mensesDays int) PhaseWindows {
	ovDay := OvulationDay(cycleLength)
	ovulation := dayRange{start: max(1, ovDay-1), end: min(cycleLength, ovDay+1)}
	return PhaseWindows{
		OvulationDay: ovDay,
		menstruation: dayRange{start: 1, end: mensesDays},
		ovulation:    ovulation,
		luteal:       dayRange{start: ovulation.end + 1, end: cycleLength},
	}
}

// Classify returns the phase of a cycle day. Overlapping windows resolve in the order
// menstruation, ovulation, luteal; anything left is follicular.
func (w PhaseWindows) Classify(cycleDay int) PhaseKey {
	switch {
	case w.menstruation.contains(cycleDay):
		return PhaseMenstruation
	case w.ovulation.contains(cycleDay):
		return PhaseOvulation
	case w.luteal.contains(cycleDay):
		return PhaseLuteal
	default:
		return PhaseFollicular
	}
}

// ClassifyPhase is a shorthand for NewPhaseWindows(cycleLength, mensesDays).Classify(cycleDay).
func ClassifyPhase(cycleDay, cycleLength, mensesDays int) PhaseKey {
	return NewPhaseWindows(cycleLength, mensesDays).Classify(cycleDay)
}
