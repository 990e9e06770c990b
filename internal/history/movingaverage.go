package history

// MaxMovingAverageWeight carried over from past episodes.
const MaxMovingAverageWeight = 0.99

// Outcome of an episode.
type Outcome int

const (
	WinA Outcome = iota
	WinB
	Draw
)

// MovingAverages of the 3 possible outcomes, indexed by Outcome.
// They sum up to 1.0.
type MovingAverages [3]float32

// add a new outcome, the count-th one (starting from 1).
func (ma *MovingAverages) add(outcome Outcome, count int) {
	weight := 1.0 - 1.0/float32(count)
	if weight > MaxMovingAverageWeight {
		weight = MaxMovingAverageWeight
	}
	for possible := range Draw + 1 {
		ma[possible] *= weight
		if possible == outcome {
			ma[possible] += 1.0 - weight
		}
	}
}

// ComputeMovingAverages returns the moving averages of the outcomes after each record.
func ComputeMovingAverages(records []Record) []MovingAverages {
	averages := make([]MovingAverages, len(records))
	var ma MovingAverages
	for ii, r := range records {
		ma.add(r.Outcome(), ii+1)
		averages[ii] = ma
	}
	return averages
}
