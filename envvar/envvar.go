// Package envvar provides typed lookups of environment variables used to override configuration defaults.
package envvar

import (
	"os"
	"strconv"
	"time"
)

// GetString returns the value of the environment variable varName, returning "", false if it is unset or empty.
func GetString(varName string) (string, bool) {
	val, ok := os.LookupEnv(varName)
	if !ok || val == "" {
		return "", false
	}

	return val, true
}

// GetInt returns the int value of the environment variable varName, if the env var is not an int or is unset it will
// return 0, false.
func GetInt(varName string) (int, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	val, err := strconv.Atoi(env)
	if err != nil {
		return 0, false
	}

	return val, true
}

// GetBool returns the boolean value of the environment variable varName, if the env var is unset or not a boolean it
// will return false, false.
func GetBool(varName string) (bool, bool) {
	val, ok := os.LookupEnv(varName)
	if !ok {
		return false, false
	}

	ret, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}

	return ret, true
}

// GetDuration returns the time.Duration value of the environment variable varName, if the env var is unset or not a
// valid duration string it will return 0, false.
func GetDuration(varName string) (time.Duration, bool) {
	val, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		return 0, false
	}

	return duration, true
}
