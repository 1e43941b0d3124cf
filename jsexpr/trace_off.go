//go:build !evaltrace

package jsexpr

import "log/slog"

// tracer is a no-op unless the binary is built with the evaltrace tag. The
// empty methods inline away, so tracing costs nothing in normal builds.
type tracer struct{}

func newTracer(*slog.Logger) tracer { return tracer{} }

func (tracer) enter(Node)           {}
func (tracer) result(Node, Value)   {}
func (tracer) invoke(Function, int) {}
