// Package report assembles console reports step by step. A Builder
// collects the parts; Build hands the finished Report back by value and
// leaves the builder ready for the next one. Preset layouts drive the
// same building steps in fixed sequences.
package report
