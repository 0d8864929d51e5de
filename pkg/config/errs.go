package config

import "errors"

// ErrInvalid wraps every validation failure reported by Config.Validate.
var ErrInvalid = errors.New("config: invalid")
