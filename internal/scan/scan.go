// Package scan evaluates a potential along a one-parameter family of
// configurations, such as a regular tetrahedron of growing side length.
package scan

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/disp4b/internal/analytic"
	"github.com/san-kum/disp4b/internal/dispersion"
	"github.com/san-kum/disp4b/internal/geom"
)

var ErrInvalidRequest = errors.New("scan: invalid request")

type Request struct {
	Shape   string  `json:"shape"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Samples int     `json:"samples"`
}

func (r Request) Validate() error {
	if _, err := geom.ShapeByName(r.Shape); err != nil {
		return errors.Wrap(ErrInvalidRequest, err.Error())
	}
	if !(r.Min > 0) || !(r.Max > r.Min) || math.IsInf(r.Max, 0) {
		return errors.Wrapf(ErrInvalidRequest, "range [%g, %g]", r.Min, r.Max)
	}
	if r.Samples < 2 {
		return errors.Wrapf(ErrInvalidRequest, "%d samples", r.Samples)
	}
	return nil
}

// Sides returns the evenly spaced side lengths, both ends included.
func (r Request) Sides() []float64 {
	sides := make([]float64, r.Samples)
	step := (r.Max - r.Min) / float64(r.Samples-1)
	for i := range sides {
		sides[i] = r.Min + float64(i)*step
	}
	sides[len(sides)-1] = r.Max
	return sides
}

// Sample is one point of a scan. Pair, Triplet and Quadruplet are the
// unscaled sums; they are zero when the dispersion model does not expose them.
type Sample struct {
	Side        float64 `json:"side"`
	Pair        float64 `json:"pair"`
	Triplet     float64 `json:"triplet"`
	Quadruplet  float64 `json:"quadruplet"`
	Dispersion  float64 `json:"dispersion"`
	Attenuation float64 `json:"attenuation"`
	ShortRange  float64 `json:"short_range"`
	Total       float64 `json:"total"`
}

type Result struct {
	Request  Request       `json:"request"`
	Samples  []Sample      `json:"samples"`
	Duration time.Duration `json:"duration"`
}

// Lowest returns the sample with the smallest finite total energy. It reports
// false when no sample has a finite total.
func (r *Result) Lowest() (Sample, bool) {
	var best Sample
	found := false
	for _, s := range r.Samples {
		if !isFinite(s.Total) {
			continue
		}
		if !found || s.Total < best.Total {
			best = s
			found = true
		}
	}
	return best, found
}

// Totals returns the total energy of every sample in order.
func (r *Result) Totals() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Total
	}
	return out
}

type Runner struct {
	Potential *analytic.Potential
	Workers   int
	Logger    logrus.FieldLogger
}

func NewRunner(p *analytic.Potential, workers int, logger logrus.FieldLogger) *Runner {
	return &Runner{Potential: p, Workers: workers, Logger: logger}
}

// Evaluate computes a single sample of shape at the given side length.
func (r *Runner) Evaluate(shape geom.ShapeFunc, side float64) Sample {
	return Measure(r.Potential, side, shape(side))
}

// Measure evaluates p on q and records the result against side.
func Measure(p *analytic.Potential, side float64, q geom.Quadruplet) Sample {
	b := p.Evaluate(q)

	s := Sample{
		Side:        side,
		Dispersion:  b.Dispersion,
		Attenuation: b.Attenuation,
		ShortRange:  b.ShortRange,
		Total:       b.Total,
	}
	if m, ok := p.Dispersion().(dispersion.Model); ok {
		c := m.Components(q[0], q[1], q[2], q[3])
		s.Pair, s.Triplet, s.Quadruplet = c.Pair, c.Triplet, c.Quadruplet
	}
	return s
}

// Run evaluates every side length of req, spreading the work over at most
// Workers goroutines. Samples are returned in order of increasing side.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	shape, _ := geom.ShapeByName(req.Shape)

	log := r.logger().WithFields(logrus.Fields{
		"shape":   req.Shape,
		"min":     req.Min,
		"max":     req.Max,
		"samples": req.Samples,
	})
	log.Debug("scan started")
	start := time.Now()

	sides := req.Sides()
	samples := make([]Sample, len(sides))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, side := range sides {
		if gctx.Err() != nil {
			break
		}
		i, side := i, side
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			samples[i] = r.Evaluate(shape, side)
			if !isFinite(samples[i].Total) {
				log.WithField("side", side).Warn("non-finite energy")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}

	res := &Result{Request: req, Samples: samples, Duration: time.Since(start)}
	log.WithField("duration", res.Duration).Info("scan finished")
	return res, nil
}

func (r *Runner) workers() int {
	if r.Workers < 1 {
		return 1
	}
	return r.Workers
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Logger == nil {
		return logrus.StandardLogger()
	}
	return r.Logger
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
