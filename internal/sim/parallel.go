package sim

import (
	"context"
	"sync"

	"github.com/san-kum/stringsim/internal/strmode"
)

// SweepPoint is one pluck position of a sweep.
type SweepPoint struct {
	Position   float64
	Amplitudes strmode.Amplitudes
	Result     *Result
}

// Sweep plucks the same string at each position concurrently. newMetrics
// is called once per run so that metric state is never shared.
func Sweep(ctx context.Context, p strmode.Params, g strmode.Grid, positions []float64, height float64, cfg Config, newMetrics func() []Metric) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(positions))
	errs := make([]error, len(positions))

	var wg sync.WaitGroup
	for i, pos := range positions {
		wg.Add(1)
		go func(idx int, pos float64) {
			defer wg.Done()

			shape, err := strmode.PluckShape(p, g, pos, height)
			if err != nil {
				errs[idx] = err
				return
			}
			amps, err := strmode.Decompose(p, g, shape)
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(p, g)
			if newMetrics != nil {
				for _, m := range newMetrics() {
					s.AddMetric(m)
				}
			}
			res, err := s.Run(ctx, shape, cfg)
			points[idx] = SweepPoint{Position: pos, Amplitudes: amps, Result: res}
			errs[idx] = err
		}(i, pos)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return points, nil
}
