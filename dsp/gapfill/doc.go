// Package gapfill repairs dropout gaps in time-frequency matrices.
//
// Recording hardware writes exact zero where no sample was captured. For each
// frequency channel independently, interior zero runs are replaced by linear
// interpolation between the nearest non-zero neighbors, and zero runs touching
// either end of the time axis take the nearest valid value (flat extension).
// Channels with no valid samples at all are left untouched.
//
// Filling is idempotent and never mutates its input.
package gapfill
