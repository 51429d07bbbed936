package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// FromContext returns the Tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	t, ok := ctx.Value(tracerKey{}).(Tracer)
	if !ok {
		return Nop
	}
	return t
}

// WithTracer returns a copy of ctx carrying t. A nil t installs Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// Enabled reports whether the tracer in ctx records events of scope.
func Enabled(ctx context.Context, scope Scope) bool {
	t := FromContext(ctx)
	return t.Enabled() && t.Level().ShouldEmit(scope)
}

// SpanContext identifies the innermost open span; children use it as parent.
type SpanContext struct {
	SpanID uint64
	GID    uint64
	Scope  Scope
}

// CurrentSpan returns the span recorded in ctx, or the zero SpanContext.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanKey{}).(SpanContext)
	return sc
}

// WithSpanContext returns a copy of ctx whose current span is sc.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanKey{}, sc)
}
