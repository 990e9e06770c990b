package parameters

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString("episodes=100,lr=0.2,verbose,,name=a=b")
	assert.Equal(t, Params{"episodes": "100", "lr": "0.2", "verbose": "", "name": "a=b"}, params)
	assert.Empty(t, NewFromConfigString(""))
	assert.Equal(t, "episodes=100,lr=0.2,name=a=b,verbose", params.String())
}

func TestGetParamOr(t *testing.T) {
	params := NewFromConfigString("episodes=100,lr=0.2,verbose,greedy=false,bad=x")

	episodes, err := GetParamOr(params, "episodes", 5)
	require.NoError(t, err)
	assert.Equal(t, 100, episodes)

	lr, err := GetParamOr(params, "lr", float32(0.1))
	require.NoError(t, err)
	assert.InDelta(t, 0.2, lr, 1e-6)

	gamma, err := GetParamOr(params, "gamma", 0.9)
	require.NoError(t, err)
	assert.Equal(t, 0.9, gamma)

	verbose, err := GetParamOr(params, "verbose", false)
	require.NoError(t, err)
	assert.True(t, verbose)

	greedy, err := GetParamOr(params, "greedy", true)
	require.NoError(t, err)
	assert.False(t, greedy)

	_, err = GetParamOr(params, "bad", 1)
	assert.Error(t, err)
	_, err = GetParamOr(params, "bad", true)
	assert.Error(t, err)
}

func TestPopParamOr(t *testing.T) {
	params := NewFromConfigString("seed=3,unknown")
	seed, err := PopParamOr(params, "seed", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, seed)
	_, found := params["seed"]
	assert.False(t, found)

	err = CheckAllConsumed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")

	delete(params, "unknown")
	assert.NoError(t, CheckAllConsumed(params))
}

func TestFromEnvFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "train.env")
	require.NoError(t, os.WriteFile(filePath, []byte("# Training run.\nEPISODES=2000\nEpsilon_Min=0.05\n"), 0644))
	params, err := FromEnvFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, Params{"episodes": "2000", "epsilon_min": "0.05"}, params)

	_, err = FromEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := Params{"episodes": "10", "seed": "1"}
	merged := Merge(base, Params{"seed": "2"}, Params{"lr": "0.3"})
	assert.Equal(t, Params{"episodes": "10", "seed": "2", "lr": "0.3"}, merged)
	// Base is not changed.
	assert.Equal(t, "1", base["seed"])
	assert.Equal(t, Params{"a": "1"}, Merge(nil, Params{"a": "1"}))
}
