package report

import "errors"

// ErrEmpty indicates an input without any sweep rows.
var ErrEmpty = errors.New("report: no rows")
