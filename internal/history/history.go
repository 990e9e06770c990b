// Package history records the progress of a training run, one Record per (sampled) episode,
// stores it in parquet files and plots it.
package history

import (
	"github.com/google/uuid"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/janpfeifer/dropfour/internal/trainer"
	"k8s.io/klog/v2"
)

// Record of one training episode.
type Record struct {
	RunID        string  `parquet:"run_id,dict"`
	Episode      int64   `parquet:"episode"`
	Winner       string  `parquet:"winner,dict"`
	Moves        int32   `parquet:"moves"`
	FirstColumn  int32   `parquet:"first_column"`
	LastColumn   int32   `parquet:"last_column"`
	ExplorationA float64 `parquet:"exploration_a"`
	ExplorationB float64 `parquet:"exploration_b"`
	StatesA      int64   `parquet:"states_a"`
	StatesB      int64   `parquet:"states_b"`
	FinalBoard   string  `parquet:"final_board"`
}

// Outcome of the episode in the record.
func (r Record) Outcome() Outcome {
	switch r.Winner {
	case PlayerA.String():
		return WinA
	case PlayerB.String():
		return WinB
	}
	return Draw
}

// FromEpisode converts a trainer.EpisodeResult to a Record.
func FromEpisode(runID string, result trainer.EpisodeResult) Record {
	return Record{
		RunID:        runID,
		Episode:      int64(result.Episode),
		Winner:       result.Winner.String(),
		Moves:        int32(result.Moves),
		FirstColumn:  int32(result.FirstColumn),
		LastColumn:   int32(result.LastColumn),
		ExplorationA: result.ExplorationRates[0],
		ExplorationB: result.ExplorationRates[1],
		StatesA:      int64(result.TableSizes[0]),
		StatesB:      int64(result.TableSizes[1]),
		FinalBoard:   string(result.Final.Key()),
	}
}

// Recorder collects the records of a training run. Its Add method can be given as the
// callback to trainer.Trainer.Run.
type Recorder struct {
	// RunID identifies the training run in the records.
	RunID string

	// Every how many episodes a record is kept. Values <= 1 keep every episode.
	Every int

	Records []Record
}

// NewRecorder creates a Recorder with a new random run id.
func NewRecorder(every int) *Recorder {
	r := &Recorder{RunID: uuid.NewString(), Every: every}
	klog.V(1).Infof("Recording training history for run %s (every %d episodes)", r.RunID, every)
	return r
}

// Add the episode result, if it is sampled.
func (r *Recorder) Add(result trainer.EpisodeResult) {
	if r.Every > 1 && result.Episode%r.Every != 0 {
		return
	}
	r.Records = append(r.Records, FromEpisode(r.RunID, result))
}
