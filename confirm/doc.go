// Package confirm turns candidate windows into persisted bursts.
//
// Each candidate moves through a fixed lifecycle:
//
//	Candidate → Presented → {Confirmed, Rejected} → (Confirmed only) Persisted
//
// An external [Decider] — an interactive viewer, a service, or an accept-all
// policy — receives every candidate with its extracted slice and axis labels
// and returns one boolean per candidate, keyed by position. All decisions
// arrive before any file is written: a decision failure aborts the run with
// nothing persisted. After that point each confirmed window is written
// independently; an I/O failure on one is recorded per window and does not
// stop the rest.
//
// Burst files are named {source}-{HHMMSS}{ext} from the window's start time at
// second resolution, with no separator characters that could upset a filename.
package confirm
