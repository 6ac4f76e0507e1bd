// Package tuning converts f0 trajectories into tuning error in cents and
// summarizes it.
package tuning
