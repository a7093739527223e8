package aggregate

import (
	"errors"
	"fmt"
)

// ErrZeroInitial is returned when a percent change is requested for a
// series starting at exactly zero. Deliberately a defined error instead of
// letting an infinity propagate into reports.
var ErrZeroInitial = errors.New("series starts at zero, percent change undefined")

// Summary holds the first/last figures of a series and the change between
// them.
type Summary struct {
	Initial       float64
	Final         float64
	Change        float64
	PercentChange float64
}

// Summarize reduces a chronological series of values to its summary.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("summarize: empty series")
	}
	s := Summary{Initial: values[0], Final: values[len(values)-1]}
	s.Change = s.Final - s.Initial
	if s.Initial == 0 {
		return Summary{}, ErrZeroInitial
	}
	s.PercentChange = s.Change / s.Initial * 100
	return s, nil
}
