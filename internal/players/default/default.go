// Package _default registers the default players that can be included in any
// front-end for dropfour.
//
// Currently, it includes:
//
//   - "qlearn": a tabular Q-learning agent, trained by self-play when first created. It accepts the
//     training parameters (see trainer.ConfigFromParams), e.g. "qlearn:episodes=50000,seed=3".
//   - "tactical": takes immediate wins, blocks immediate losses, and otherwise plays randomly. Accepts "seed".
//   - "random": uniformly random playable column. Accepts "seed".
//   - "alphabeta": alpha-beta pruning search over a linear scorer of board features. Accepts "max_depth",
//     "randomness" and "seed".
package _default

import (
	"context"
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/ai/baseline"
	"github.com/janpfeifer/dropfour/internal/features"
	"github.com/janpfeifer/dropfour/internal/parameters"
	"github.com/janpfeifer/dropfour/internal/players"
	"github.com/janpfeifer/dropfour/internal/searchers/alphabeta"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/janpfeifer/dropfour/internal/trainer"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"sync"
	"time"
)

func init() {
	players.RegisterModule("qlearn", &QLearn{})
	players.RegisterModule("tactical", &Tactical{})
	players.RegisterModule("random", &Random{})
	players.RegisterModule("alphabeta", &AlphaBeta{})
}

// Assert modules implement players.Module.
var (
	_ players.Module = (*QLearn)(nil)
	_ players.Module = (*Tactical)(nil)
	_ players.Module = (*Random)(nil)
	_ players.Module = (*AlphaBeta)(nil)
)

// Random implements the "random" player module.
type Random struct{}

// NewPlayer implements players.Module.
func (r *Random) NewPlayer(matchIdx int, piece Piece, params parameters.Params) (ai.Player, error) {
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	return baseline.NewRandom(matchSeed(seed, matchIdx, piece)), nil
}

// Tactical implements the "tactical" player module.
type Tactical struct{}

// NewPlayer implements players.Module.
func (t *Tactical) NewPlayer(matchIdx int, piece Piece, params parameters.Params) (ai.Player, error) {
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	return baseline.NewTactical(piece, matchSeed(seed, matchIdx, piece)), nil
}

// AlphaBeta implements the "alphabeta" player module.
type AlphaBeta struct{}

// NewPlayer implements players.Module.
func (ab *AlphaBeta) NewPlayer(matchIdx int, piece Piece, params parameters.Params) (ai.Player, error) {
	maxDepth, err := parameters.PopParamOr(params, "max_depth", alphabeta.DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	randomness, err := parameters.PopParamOr(params, "randomness", float32(0))
	if err != nil {
		return nil, err
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	if maxDepth < 1 {
		return nil, errors.Errorf("alphabeta max_depth must be >= 1, got %d", maxDepth)
	}
	searcher := alphabeta.New(features.DefaultLinear).
		WithMaxDepth(maxDepth).
		WithRandomness(randomness).
		WithSeed(matchSeed(seed, matchIdx, piece))
	return alphabeta.NewPlayer(searcher, piece), nil
}

func matchSeed(seed, matchIdx int, piece Piece) uint64 {
	return uint64(seed)<<32 + uint64(matchIdx)<<2 + uint64(piece)
}

// QLearn implements the "qlearn" player module.
//
// The agents are trained on the first request for a configuration, and the trained trainer is
// cached: later players with the same configuration share the (read-only) value tables.
type QLearn struct {
	mu      sync.Mutex
	trained map[string]*trainedEntry
}

type trainedEntry struct {
	once    sync.Once
	trainer *trainer.Trainer
	err     error
}

// NewPlayer implements players.Module.
func (q *QLearn) NewPlayer(matchIdx int, piece Piece, params parameters.Params) (ai.Player, error) {
	config, err := trainer.ConfigFromParams(trainer.DefaultConfig(), params)
	if err != nil {
		return nil, err
	}
	t, err := q.Trained(config)
	if err != nil {
		return nil, err
	}
	return t.AgentFor(piece).Frozen(config.Seed + uint64(matchIdx)), nil
}

// Trained returns the trainer after running the training for config. Results are cached, and
// concurrent requests for the same configuration wait for the one training.
func (q *QLearn) Trained(config trainer.Config) (*trainer.Trainer, error) {
	cacheKey := configKey(config)
	q.mu.Lock()
	if q.trained == nil {
		q.trained = make(map[string]*trainedEntry)
	}
	entry, found := q.trained[cacheKey]
	if !found {
		entry = &trainedEntry{}
		q.trained[cacheKey] = entry
	}
	q.mu.Unlock()
	entry.once.Do(func() {
		entry.trainer, entry.err = train(config)
	})
	return entry.trainer, entry.err
}

func configKey(config trainer.Config) string {
	config.LogEvery = 0
	return fmt.Sprintf("%+v", config)
}

// TrainingContext is used to train the qlearn agents. Front-ends may set it to a context cancelled
// on interruption: the training is then stopped early, and the agents play with what they learned so far.
var TrainingContext = context.Background()

func train(config trainer.Config) (*trainer.Trainer, error) {
	start := time.Now()
	klog.Infof("Training qlearn agents for %d episodes (seed=%d)", config.Episodes, config.Seed)
	var t *trainer.Trainer
	var trainErr error
	err := exceptions.TryCatch[error](func() {
		t, trainErr = trainer.New(config)
		if trainErr != nil {
			return
		}
		var summary trainer.Summary
		summary, trainErr = t.Run(TrainingContext, nil)
		if trainErr == nil {
			klog.Infof("Training finished in %s: %s", time.Since(start).Round(time.Millisecond), summary)
		}
	})
	if err == nil {
		err = trainErr
	}
	if errors.Is(err, context.Canceled) {
		klog.Warningf("Training interrupted after %s", time.Since(start).Round(time.Millisecond))
		err = nil
	}
	if err != nil {
		return nil, errors.WithMessage(err, "training qlearn agents")
	}
	return t, nil
}
