package domain

import "errors"

// ErrConfigNotFound is returned when a configuration document cannot be found in the config directory.
var ErrConfigNotFound = errors.New("config document not found")

// ErrUnknownStage is returned when a stage identifier is not part of the registered stages.
var ErrUnknownStage = errors.New("unknown stage")

// ErrStaleStage is returned when a stage that is no longer active tries to act on the session.
var ErrStaleStage = errors.New("stale stage")

// ErrRunNotFound is returned when no snapshot was recorded for a run ID.
var ErrRunNotFound = errors.New("run not found")
