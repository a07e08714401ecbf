// Package buffer accumulates byte streams into aggregate results.
//
// Collect gathers a stream's chunks in arrival order; Text additionally
// decodes the concatenation with a named charset. Both are tasks and
// follow the shared cancellation discipline: cancelling detaches the
// listeners this package attached and nothing else; the source stream is
// never closed or aborted from here.
package buffer
