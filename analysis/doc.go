// Package analysis composes conditioning, pitch tracking, tuning error and
// spectral comparison into a per-clip report.
//
// A Run conditions the clip once and then evaluates the pitch branch
// (Track, Cents, Summarize) and the spectral branch (every configured FFT
// size and window) concurrently. RunBatch applies Run to many clips with
// bounded parallelism and keeps going when individual clips fail.
package analysis
