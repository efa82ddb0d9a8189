// Package queue serializes grid mutations and spaces them in time.
//
// Typing fast enough can produce key events faster than a host can apply
// them. A Queue accepts jobs in arrival order and runs them on a single
// worker goroutine, each job no sooner than Interval after the previous
// one. The first job after an idle period runs immediately.
//
// In Sync mode jobs run inline on the submitting goroutine, which is what
// tests and hosts without a render loop usually want.
//
// A Queue can be given a sync.Locker that the worker holds while a job
// runs. Callers that mutate the same state under that lock therefore never
// race with a deferred job. Do not call Flush while holding that lock: the
// worker needs it to make progress.
package queue
