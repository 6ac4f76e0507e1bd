// Package pitch estimates fundamental-frequency trajectories of monophonic
// signals with the YIN method.
//
// Tracking runs in two passes. The first estimates every frame
// independently and in parallel. The second is a sequential post-processing
// pass over the whole curve: out-of-range estimates are gated to missing, the
// curve is smoothed with a moving average over valid neighbours and remaining
// gaps are filled by linear interpolation. Missing estimates are NaN.
package pitch
