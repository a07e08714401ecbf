// Package event bridges listener-driven sources into the task world.
//
// Emitter is a small named-event listener registry; Stream layers the
// data/end/error convention for byte streams on top of it. Once converts
// "first of an event or an error" into a task, which is the only place in
// relay where listener lifecycles are managed by hand; every component
// above this package consumes tasks, never raw callbacks.
package event
