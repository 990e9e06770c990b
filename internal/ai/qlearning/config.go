package qlearning

import (
	"github.com/janpfeifer/dropfour/internal/parameters"
	"github.com/pkg/errors"
)

// Config holds the hyperparameters of an Agent.
type Config struct {
	// LearningRate (alpha) of the Bellman update.
	LearningRate float32

	// DiscountFactor (gamma) of the next state value.
	DiscountFactor float32

	// ExplorationRate (epsilon) at the start of training.
	ExplorationRate float64

	// ExplorationDecay multiplies the exploration rate after each episode.
	ExplorationDecay float64

	// MinExplorationRate is the floor of the exploration rate.
	MinExplorationRate float64

	// MaxTableEntries, if > 0, uses a qtable.BoundedTable with this capacity instead of the unbounded table.
	MaxTableEntries int

	// Seed of the random number generator used for exploration.
	Seed uint64
}

// DefaultConfig returns the default hyperparameters.
func DefaultConfig() Config {
	return Config{
		LearningRate:       0.1,
		DiscountFactor:     0.9,
		ExplorationRate:    1.0,
		ExplorationDecay:   0.995,
		MinExplorationRate: 0.1,
	}
}

// Validate returns an error if any of the hyperparameters is out of range.
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return errors.Errorf("learning rate must be in (0, 1], got %g", c.LearningRate)
	}
	if c.DiscountFactor < 0 || c.DiscountFactor > 1 {
		return errors.Errorf("discount factor must be in [0, 1], got %g", c.DiscountFactor)
	}
	if c.ExplorationRate < 0 || c.ExplorationRate > 1 {
		return errors.Errorf("exploration rate must be in [0, 1], got %g", c.ExplorationRate)
	}
	if c.MinExplorationRate < 0 || c.MinExplorationRate > c.ExplorationRate {
		return errors.Errorf("min exploration rate must be in [0, exploration rate=%g], got %g",
			c.ExplorationRate, c.MinExplorationRate)
	}
	if c.ExplorationDecay <= 0 || c.ExplorationDecay > 1 {
		return errors.Errorf("exploration decay must be in (0, 1], got %g", c.ExplorationDecay)
	}
	if c.MaxTableEntries < 0 || c.MaxTableEntries == 1 {
		return errors.Errorf("max table entries must be 0 (unbounded) or >= 2, got %d", c.MaxTableEntries)
	}
	return nil
}

// ConfigFromParams updates config with the hyperparameters in params, and removes the ones used:
//
//   - lr: learning rate.
//   - gamma: discount factor.
//   - epsilon: initial exploration rate.
//   - epsilon_decay: exploration decay per episode.
//   - epsilon_min: exploration rate floor.
//   - max_entries: maximum number of states in the table, 0 for unbounded.
func ConfigFromParams(config Config, params parameters.Params) (Config, error) {
	var err error
	if config.LearningRate, err = parameters.PopParamOr(params, "lr", config.LearningRate); err != nil {
		return config, err
	}
	if config.DiscountFactor, err = parameters.PopParamOr(params, "gamma", config.DiscountFactor); err != nil {
		return config, err
	}
	if config.ExplorationRate, err = parameters.PopParamOr(params, "epsilon", config.ExplorationRate); err != nil {
		return config, err
	}
	if config.ExplorationDecay, err = parameters.PopParamOr(params, "epsilon_decay", config.ExplorationDecay); err != nil {
		return config, err
	}
	if config.MinExplorationRate, err = parameters.PopParamOr(params, "epsilon_min", config.MinExplorationRate); err != nil {
		return config, err
	}
	if config.MaxTableEntries, err = parameters.PopParamOr(params, "max_entries", config.MaxTableEntries); err != nil {
		return config, err
	}
	return config, nil
}
