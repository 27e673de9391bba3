package cache

import (
	"errors"
	"fmt"
)

// ErrNilStatsSink is returned by New when no stats sink is supplied.
var ErrNilStatsSink = errors.New("cache: stats sink must not be nil")

// ConfigError reports a cache configuration that cannot be built.
type ConfigError struct {
	Param  string
	Value  int
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cache config: %s=%d %s", e.Param, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ProtocolError reports an unknown or unsupported protocol selector.
type ProtocolError struct {
	Protocol Protocol
	// Name is set when the selector came from text.
	Name string
}

func (e *ProtocolError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("cache: unknown protocol %q", e.Name)
	}

	return fmt.Sprintf("cache: unknown protocol %s", e.Protocol)
}
