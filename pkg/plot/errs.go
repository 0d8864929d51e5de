package plot

import "errors"

// ErrNoData indicates that no curve has enough feasible points to draw.
var ErrNoData = errors.New("plot: not enough feasible points")
