// Package handle ties resource lifetimes to explicit handles. A Managed
// handle owns one io.Closer and closes it exactly once; a Group owns a
// stack of handles and closes them in reverse acquisition order, the way
// a run of defers would.
package handle
