package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/superdense/pkg/domain"
)

// LogHooks logs every transition at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(msg string) func(context.Context, *domain.Event) {
		return func(ctx context.Context, e *domain.Event) {
			attrs := []any{"run_id", e.RunID, "phase", e.Phase.String()}
			if e.State != nil {
				attrs = append(attrs, "bits", e.State.Input.Bits.String(), "gate_cutting", e.State.Input.GateCutting)
				if e.State.Failure != nil {
					attrs = append(attrs, "failure", e.State.Failure.Message)
				}
				if e.State.Result != nil {
					attrs = append(attrs, "received", e.State.Result.String())
				}
			}
			logger.DebugContext(ctx, msg, attrs...)
		}
	}
	return domain.LifecycleHooks{
		OnRunStart:         log("run_start"),
		OnPhaseEnter:       log("phase_enter"),
		OnRunComplete:      log("run_complete"),
		OnValidationFailed: log("validation_failed"),
	}
}

// CombineHooks merges hook sets. Callbacks run in argument order.
func CombineHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var starts, enters, completes, failures []func(context.Context, *domain.Event)
	for _, h := range sets {
		starts = appendHook(starts, h.OnRunStart)
		enters = appendHook(enters, h.OnPhaseEnter)
		completes = appendHook(completes, h.OnRunComplete)
		failures = appendHook(failures, h.OnValidationFailed)
	}
	return domain.LifecycleHooks{
		OnRunStart:         chain(starts),
		OnPhaseEnter:       chain(enters),
		OnRunComplete:      chain(completes),
		OnValidationFailed: chain(failures),
	}
}

func appendHook(list []func(context.Context, *domain.Event), fn func(context.Context, *domain.Event)) []func(context.Context, *domain.Event) {
	if fn == nil {
		return list
	}
	return append(list, fn)
}

func chain(fns []func(context.Context, *domain.Event)) func(context.Context, *domain.Event) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *domain.Event) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}
