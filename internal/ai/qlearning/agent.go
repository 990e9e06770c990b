// Package qlearning implements a tabular Q-learning agent for connect-four: it owns its value
// table, its exploration rate and its random number generator.
package qlearning

import (
	"fmt"
	"github.com/janpfeifer/dropfour/internal/ai/qtable"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/pkg/errors"
	"math/rand/v2"
)

// Agent learns to play one side (piece) of the game.
//
// It is not safe for concurrent use. Use Frozen to get a read-only Player for concurrent matches.
type Agent struct {
	piece           Piece
	config          Config
	table           qtable.Store
	explorationRate float64
	rng             *rand.Rand
}

// NewAgent creates an Agent for piece, with an empty value table.
func NewAgent(piece Piece, config Config) (*Agent, error) {
	if !piece.IsPlayer() {
		return nil, errors.Errorf("invalid piece %s for a Q-learning agent", piece)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "invalid configuration for agent %s", piece)
	}
	a := &Agent{
		piece:           piece,
		config:          config,
		explorationRate: config.ExplorationRate,
		rng:             rand.New(rand.NewPCG(config.Seed, uint64(piece))),
	}
	if config.MaxTableEntries > 0 {
		a.table = qtable.NewBounded(config.MaxTableEntries)
	} else {
		a.table = qtable.New()
	}
	return a, nil
}

// Piece played by the agent.
func (a *Agent) Piece() Piece { return a.piece }

// Config used to create the agent.
func (a *Agent) Config() Config { return a.config }

// Table returns the agent's value table.
func (a *Agent) Table() qtable.Store { return a.table }

// TableSize returns the number of states in the value table.
func (a *Agent) TableSize() int { return a.table.Len() }

// ExplorationRate returns the current exploration rate.
func (a *Agent) ExplorationRate() float64 { return a.explorationRate }

// Learn applies the Bellman update to the value of column in the state key.
func (a *Agent) Learn(key StateKey, column int, reward float32, nextKey StateKey) {
	a.table.Update(key, column, reward, nextKey, a.config.LearningRate, a.config.DiscountFactor)
}

// DecayExploration multiplies the exploration rate by the decay, down to the configured floor.
// It is called once per episode.
func (a *Agent) DecayExploration() {
	a.explorationRate = max(a.config.MinExplorationRate, a.explorationRate*a.config.ExplorationDecay)
}

// String implements fmt.Stringer.
func (a *Agent) String() string {
	return fmt.Sprintf("Q-learning(%s, epsilon=%.3f, states=%d)", a.piece, a.explorationRate, a.table.Len())
}
