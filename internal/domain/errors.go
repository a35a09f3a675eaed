package domain

import "errors"

// ErrConfigurationInvalid is returned when branch configuration is malformed.
// Evaluation refuses to guess and stops for the whole branch.
var ErrConfigurationInvalid = errors.New("ConfigurationInvalid")
