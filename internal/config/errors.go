package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey indicates a required settings-file key is absent or blank.
	ErrMissingKey = errors.New("missing configuration key")
	// ErrInvalidValue indicates a settings value is present but unusable.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// MissingEnvError reports a required environment variable that is not set.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("%s not set", e.Name)
}
