// Package snapshot captures point-in-time host metrics and clones them.
// Capture samples the machine and is comparatively expensive; Clone is a
// cheap deep copy, so pre-captured snapshots can serve as prototypes for
// derived ones. A Registry hands out clones of named prototypes.
package snapshot
