// Package pubsub provides a typed publish/subscribe interface with two
// interchangeable backends: an in-process channel fan-out and a Redis
// bridge using JSON payloads. New selects the backend from configuration.
package pubsub
