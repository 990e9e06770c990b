// Package players provides a factory of AI players from configuration strings.
// It also allows player providers to register themselves.
package players

import (
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/arena"
	"github.com/janpfeifer/dropfour/internal/generics"
	"github.com/janpfeifer/dropfour/internal/parameters"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/pkg/errors"
	"slices"
	"strings"
	"sync"
)

// Module must implement NewPlayer called at the start of a match.
//
// matchIdx is unique among matches, but NewPlayer may be called twice for the same matchIdx, one
// for each piece, if a module plays against itself. It may also be called concurrently.
//
// The module must pop (see parameters.PopParamOr) every parameter it uses: any parameter left
// in params is reported as an error.
type Module interface {
	NewPlayer(matchIdx int, piece Piece, params parameters.Params) (ai.Player, error)
}

// moduleRegistration is a reference to the module and its name.
type moduleRegistration struct {
	Module
	Name string
}

var (
	// Registered external modules.
	keywordToModules = make(map[string]moduleRegistration)
	muModules        sync.Mutex
)

// RegisterModule so it can be used by any of the front-ends to play.
func RegisterModule(name string, module Module) {
	muModules.Lock()
	defer muModules.Unlock()
	keywordToModules[name] = moduleRegistration{Name: name, Module: module}
}

// Modules returns the sorted names of the registered modules.
func Modules() []string {
	muModules.Lock()
	defer muModules.Unlock()
	return slices.Collect(generics.SortedKeys(keywordToModules))
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed by the
	// front-end.
	DefaultPlayerConfig = "qlearn"
)

// SplitConfig returns the module name and its parameters from a configuration string.
// If config is empty, DefaultPlayerConfig is used.
func SplitConfig(config string) (moduleName string, params parameters.Params) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	moduleName = config
	var paramsConfig string
	if moduleSplit := strings.Index(config, ":"); moduleSplit != -1 {
		moduleName = config[:moduleSplit]
		paramsConfig = config[moduleSplit+1:]
	}
	return moduleName, parameters.NewFromConfigString(paramsConfig)
}

// New creates a new AI player given the configuration string.
//
// Args:
//
//	matchIdx: index of the match, used by modules to derive random seeds.
//	piece: the piece the player plays with.
//	config: the AI name followed by a colon (":"), followed by a comma-separated list of optional parameters
//		with optional values associated. E.g.: "qlearn:episodes=50000,seed=3".
//		If empty, the default is given by DefaultPlayerConfig.
//
// More details on the config are dependent on the module used.
func New(matchIdx int, piece Piece, config string) (ai.Player, error) {
	moduleName, params := SplitConfig(config)
	return NewWithParams(matchIdx, piece, moduleName, params)
}

// NewWithParams is like New, but the module parameters are given already parsed.
// params is consumed (modified) by the call.
func NewWithParams(matchIdx int, piece Piece, moduleName string, params parameters.Params) (ai.Player, error) {
	muModules.Lock()
	module, ok := keywordToModules[moduleName]
	muModules.Unlock()
	if !ok {
		return nil, errors.Errorf("unknown AI player %q, registered players are %q", moduleName, Modules())
	}
	if params == nil {
		params = make(parameters.Params)
	}
	player, err := module.NewPlayer(matchIdx, piece, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player %q", moduleName)
	}
	if err = parameters.CheckAllConsumed(params); err != nil {
		return nil, errors.WithMessagef(err, "AI player %q", moduleName)
	}
	return player, nil
}

// Factory returns an arena.PlayerFactory that creates players with the given configuration.
func Factory(config string) arena.PlayerFactory {
	return func(matchIdx int, piece Piece) (ai.Player, error) {
		return New(matchIdx, piece, config)
	}
}
