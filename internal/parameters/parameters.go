// Package parameters handles generic configuration Params, a map[string]string that the
// user can set, either with a configuration string (e.g.: "episodes=1000,seed=3") or with a
// dotenv file.
package parameters

import (
	"github.com/janpfeifer/dropfour/internal/generics"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString create params from user's configuration string.
// See GetParamOr and PopParamOr to parse values from this map.
func NewFromConfigString(config string) Params {
	params := make(Params)
	parts := strings.Split(config, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		subParts := strings.SplitN(part, "=", 2) // Split into up to 2 parts to handle '=' in values
		if len(subParts) == 1 {
			params[subParts[0]] = ""
		} else if len(subParts) == 2 {
			params[subParts[0]] = subParts[1]
		}
	}
	return params
}

// FromEnvFile reads the parameters from a dotenv file. Keys are lower-cased, so
// "EPISODES=1000" is read as the parameter "episodes".
func FromEnvFile(filePath string) (Params, error) {
	env, err := godotenv.Read(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read parameters from %q", filePath)
	}
	params := make(Params, len(env))
	for key, value := range env {
		params[strings.ToLower(key)] = value
	}
	return params, nil
}

// Merge returns a new Params with the contents of base, overwritten by each of the overrides, in order.
func Merge(base Params, overrides ...Params) Params {
	merged := maps.Clone(base)
	if merged == nil {
		merged = make(Params)
	}
	for _, o := range overrides {
		maps.Copy(merged, o)
	}
	return merged
}

// CheckAllConsumed returns an error listing the keys still in params.
// Use it after all known parameters were popped with PopParamOr.
func CheckAllConsumed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	keys := slices.Collect(generics.SortedKeys(params))
	return errors.Errorf("unknown parameter(s): %q", keys)
}

// String returns the params in the config string format, sorted by key.
func (p Params) String() string {
	parts := make([]string, 0, len(p))
	for key, value := range generics.SortedKeysAndValues(p) {
		if value == "" {
			parts = append(parts, key)
		} else {
			parts = append(parts, key+"="+value)
		}
	}
	return strings.Join(parts, ",")
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T interface {
	bool | int | float32 | float64 | string
}](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T interface {
	bool | int | float32 | float64 | string
}](params Params, key string, defaultValue T) (T, error) {
	vAny := (any)(defaultValue)
	var t T
	toT := func(v any) T { return v.(T) }
	switch vAny.(type) {
	case string:
		if value, exists := params[key]; exists {
			return toT(value), nil
		}
	case int:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.Atoi(value)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
			}
			return toT(parsedValue), nil
		}
	case float32:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
			}
			return toT(float32(parsedValue)), nil
		}
	case float64:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
			}
			return toT(parsedValue), nil
		}
	case bool:
		if value, exists := params[key]; exists {
			if value == "" || strings.ToLower(value) == "true" || value == "1" { // Empty value is considered "true"
				return toT(true), nil
			}
			if strings.ToLower(value) == "false" || value == "0" {
				return toT(false), nil
			}
			return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
		}
	}
	return defaultValue, nil
}
