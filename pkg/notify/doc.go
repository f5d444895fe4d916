// Package notify delivers notices through collaborators injected at
// construction time. A Service needs a Formatter and a Sink; picking the
// implementations is the caller's job, the service never chooses its own
// dependencies. Missing dependencies are constructor errors.
package notify
