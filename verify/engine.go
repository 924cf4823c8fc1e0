// Package verify checks structured claims about mathematical answers:
// roots, values, equivalences, derivatives, antiderivatives, limits,
// stationary points, solution intervals and solutions of systems.
package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/njchilds90/answercheck/internal/logger"
)

// Engine validates answer specs. It holds only configuration and is safe
// for concurrent use.
type Engine struct {
	tol     float64
	timeout time.Duration
	log     logger.Logger
}

func New(opts ...Option) *Engine {
	e := &Engine{tol: DefaultTolerance, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Tolerance() float64 { return e.tol }

// Validate decodes the answer_spec of a question and validates it. It never
// fails: every problem is reported as a Report with OK false.
func (e *Engine) Validate(ctx context.Context, question []byte) Report {
	spec, err := Decode(question)
	if err != nil {
		var se *SpecError
		kind := Kind("")
		if errors.As(err, &se) {
			kind = se.Kind
		}
		return e.finish(ctx, kind, time.Now(), false, nil, err)
	}
	return e.ValidateSpec(ctx, spec)
}

// ValidateSpec validates a decoded spec.
func (e *Engine) ValidateSpec(ctx context.Context, spec Spec) Report {
	start := time.Now()
	if spec == nil {
		return e.finish(ctx, "", start, false, nil, &SpecError{Err: ErrMissingSpec})
	}
	kind := spec.Kind()
	if err := specValidate.Struct(spec); err != nil {
		return e.finish(ctx, kind, start, false, nil, fieldError(kind, err))
	}

	ctx, span := startValidateSpan(ctx, kind)
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	type outcome struct {
		ok      bool
		details Details
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: &panicError{value: r}}
			}
		}()
		ok, details, err := e.dispatch(ctx, spec)
		done <- outcome{ok, details, err}
	}()

	var r Report
	select {
	case out := <-done:
		r = e.finish(ctx, kind, start, out.ok, out.details, out.err)
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
		}
		r = e.finish(ctx, kind, start, false, nil, err)
	}
	endValidateSpan(span, r)
	return r
}

func (e *Engine) dispatch(ctx context.Context, spec Spec) (bool, Details, error) {
	switch s := spec.(type) {
	case *RootsSpec:
		return e.checkRoots(ctx, s)
	case *ValueSpec:
		return e.checkValue(ctx, s)
	case *EquivSpec:
		return e.checkEquiv(ctx, s)
	case *DerivativeSpec:
		return e.checkDerivative(ctx, s)
	case *AntiderivativeSpec:
		return e.checkAntiderivative(ctx, s)
	case *LimitSpec:
		return e.checkLimit(ctx, s)
	case *StationaryPointSpec:
		return e.checkStationary(ctx, s)
	case *IntervalSpec:
		return e.checkInterval(ctx, s)
	case *SystemSolveSpec:
		return e.checkSystem(ctx, s)
	}
	return false, nil, &SpecError{Kind: spec.Kind(), Err: ErrUnsupportedKind,
		Msg: fmt.Sprintf("unsupported kind %q. supported=%v", spec.Kind(), SupportedKinds())}
}

// finish builds the report and logs it.
func (e *Engine) finish(ctx context.Context, kind Kind, start time.Time, ok bool, details Details, err error) Report {
	r := Report{OK: ok && err == nil, Kind: kindLabel(kind), Details: details}
	log := e.log
	if log == nil {
		log = logger.FromContext(ctx)
	}
	log = log.With("kind", r.Kind)
	switch {
	case err != nil:
		r.ErrorKind, r.Reason = classify(err)
		if r.ErrorKind == ErrorKindInternal {
			log.Error("validation aborted", "reason", r.Reason, "elapsed", time.Since(start))
		} else {
			log.Debug("validation rejected", "error_kind", r.ErrorKind, "reason", r.Reason)
		}
	case !ok:
		r.ErrorKind = ErrorKindSemantic
		r.Reason = semanticReason(details)
		log.Debug("claim does not hold", "reason", r.Reason, "elapsed", time.Since(start))
	default:
		log.Debug("validated", "elapsed", time.Since(start))
	}
	recordOutcome(r, time.Since(start))
	return r
}

// semanticReason names the first recorded failure of a false claim.
func semanticReason(details Details) string {
	if fs, ok := details["failures"].([]string); ok && len(fs) > 0 {
		return fs[0]
	}
	if d, ok := details["detail"].(string); ok && d != "" {
		return "mismatch: " + d
	}
	return "claim does not hold"
}
