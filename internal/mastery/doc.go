// Package mastery tracks per-word performance and the learning/mastered state machine.
//
// Everything here is pure: RecordOutcome returns a new record and never writes into the
// History it was given, and Classify only reads. Callers merge results with History.With.
package mastery
