package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The set is closed: [Type.Valid] reports
// whether a value names one of the supported windows.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
	TypeFlatTop
	TypeBartlett
	TypeWelch
	TypeCosine

	typeCount
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
	CoherentGain    float64
}

var (
	hannCoeffs           = []float64{0.5, -0.5}
	hammingCoeffs        = []float64{0.54, -0.46}
	blackmanCoeffs       = []float64{0.42, -0.5, 0.08}
	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	flatTopCoeffs        = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

var metadataByType = map[Type]Metadata{
	TypeRectangular:    {Name: "Rectangular", ENBW: 1.0, HighestSidelobe: -13.3, CoherentGain: 1.0},
	TypeHann:           {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5},
	TypeHamming:        {Name: "Hamming", ENBW: 1.363, HighestSidelobe: -42.7, CoherentGain: 0.54},
	TypeBlackman:       {Name: "Blackman", ENBW: 1.727, HighestSidelobe: -58.1, CoherentGain: 0.42},
	TypeBlackmanHarris: {Name: "Blackman-Harris", ENBW: 2.004, HighestSidelobe: -92.0, CoherentGain: 0.35875},
	TypeFlatTop:        {Name: "Flat-Top", ENBW: 3.770, HighestSidelobe: -93.6, CoherentGain: 0.2156},
	TypeBartlett:       {Name: "Bartlett", ENBW: 1.333, HighestSidelobe: -26.5, CoherentGain: 0.5},
	TypeWelch:          {Name: "Welch", ENBW: 1.2, HighestSidelobe: -21.3, CoherentGain: 0.667},
	TypeCosine:         {Name: "Cosine", ENBW: 1.234, HighestSidelobe: -23.0, CoherentGain: 0.637},
}

// names used by ParseType and String; lower-case, hyphen separated.
var namesByType = map[Type]string{
	TypeRectangular:    "rectangular",
	TypeHann:           "hann",
	TypeHamming:        "hamming",
	TypeBlackman:       "blackman",
	TypeBlackmanHarris: "blackman-harris",
	TypeFlatTop:        "flat-top",
	TypeBartlett:       "bartlett",
	TypeWelch:          "welch",
	TypeCosine:         "cosine",
}

var aliases = map[string]Type{
	"rect":           TypeRectangular,
	"boxcar":         TypeRectangular,
	"hanning":        TypeHann,
	"blackmanharris": TypeBlackmanHarris,
	"flattop":        TypeFlatTop,
	"triangle":       TypeBartlett,
	"sine":           TypeCosine,
}

// Valid reports whether t is one of the supported window types.
func (t Type) Valid() bool {
	return t >= TypeRectangular && t < typeCount
}

// String returns the canonical configuration name of t.
func (t Type) String() string {
	if name, ok := namesByType[t]; ok {
		return name
	}

	return fmt.Sprintf("window(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupported, int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// ParseType maps a configuration name such as "hann" or "Blackman-Harris"
// to its Type. Matching is case-insensitive and ignores surrounding space.
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range namesByType {
		if n == key {
			return t, nil
		}
	}

	if t, ok := aliases[key]; ok {
		return t, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupported, name)
}

// Types returns all supported window types in declaration order.
func Types() []Type {
	out := make([]Type, 0, int(typeCount))
	for t := TypeRectangular; t < typeCount; t++ {
		out = append(out, t)
	}

	return out
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. The symmetric
// form is the default, matching numpy's hanning/hamming. It returns nil for
// non-positive lengths and unsupported types.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 || !t.Valid() {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Coefficients is Generate with validation: it reports ErrUnsupported for
// unknown types and an error for non-positive sizes.
func Coefficients(t Type, size int, opts ...Option) ([]float64, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupported, int(t))
	}

	if err := validateLength(size); err != nil {
		return nil, err
	}

	return Generate(t, size, opts...), nil
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) error {
	if len(buf) == 0 {
		return nil
	}

	coeffs, err := Coefficients(t, len(buf), opts...)
	if err != nil {
		return err
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func evalWindow(t Type, x float64) float64 {
	if x < 0 {
		x = 0
	}

	if x > 1 {
		x = 1
	}

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris:
		return cosineFromCoeffs(x, blackmanHarrisCoeffs)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	case TypeBartlett:
		return 1 - math.Abs(2*x-1)
	case TypeWelch:
		d := x - 0.5
		return 1 - 4*d*d
	case TypeCosine:
		return math.Sin(math.Pi * x)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
