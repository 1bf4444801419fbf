/*
Package library keeps the catalog of a small lending library in memory.

Books are held in an unbalanced binary search tree ordered by title, users in
a short directory list, and a LoanCoordinator moves books between the
Available and Borrowed states while keeping both structures consistent.
LibraryManager bundles everything behind the API the front ends use.

Nothing is persisted: the catalog starts empty, the directory starts with
three seed users, and all state is gone when the process exits.
*/
package library

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
