// Package spectrum computes windowed one-sided magnitude spectra.
//
// Analyze transforms the first FFTSize samples of a buffer after applying a
// symmetric window. It never zero-pads: a buffer shorter than the transform
// is an error. AnalyzeAll evaluates several size/window configurations of
// the same buffer concurrently so resolutions and windows can be compared.
//
// Partials measures the level of individual harmonics with the Goertzel
// recurrence, which avoids bin quantization when the fundamental is known.
package spectrum
