//go:build evaltrace

package jsexpr

import "log/slog"

// tracer emits a log event on entry to every node visited, plus result
// events for unary and binary nodes and call events for host functions.
// Enabled by building with -tags evaltrace.
type tracer struct {
	logger *slog.Logger
}

func newTracer(l *slog.Logger) tracer {
	if l == nil {
		l = slog.Default()
	}
	return tracer{logger: l}
}

func (t tracer) enter(n Node) {
	t.logger.Debug("eval", "kind", n.Kind(), "expr", n.String())
}

func (t tracer) result(n Node, v Value) {
	t.logger.Debug("eval result", "expr", n.String(), "value", v)
}

func (t tracer) invoke(fn Function, argc int) {
	t.logger.Debug("call", "function", fn.Describe(), "argc", argc)
}
