// Package resample provides offline rational sample-rate conversion using a
// polyphase Kaiser-windowed sinc FIR with anti-aliasing defaults.
//
// The converter works on whole buffers and compensates the filter group delay,
// so output sample m is aligned with input time m*down/up.
//
// Quality modes:
//   - QualityFast: lower CPU, lower attenuation
//   - QualityBalanced: default mode
//   - QualityBest: higher attenuation and flatter passband
//
// Default quality/performance matrix:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// Common workflows:
//   - Convert(input, inRate, outRate, opts...)
//   - NewForRates(inRate, outRate, opts...) then Converter.Convert
//   - NewRational(up, down, opts...)
package resample
