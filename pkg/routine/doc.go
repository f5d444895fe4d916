// Package routine wraps goroutine lifecycles in ownership handles. A
// Guard joins a single goroutine, a Worker runs a Runner on demand, a
// Group fans out tasks and collects the first error, and a Limiter
// bounds how much of that runs at once.
package routine
