package coupon

import (
	"strings"

	"github.com/go-faster/errors"
)

// ErrInvalidCoupon is returned when a code is not in the registry.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// Registry is the closed set of accepted coupon codes. Every code is worth the
// same flat discount; the rate lives in the pricing policy, not here.
type Registry struct {
	codes map[string]struct{}
}

// Default returns the storefront's built-in codes.
func Default() *Registry {
	return New("LUXE10", "WELCOME20", "SUMMER15")
}

func New(codes ...string) *Registry {
	r := &Registry{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		if n := Normalize(c); n != "" {
			r.codes[n] = struct{}{}
		}
	}
	return r
}

// Normalize upper-cases a code. Surrounding whitespace is significant, so
// " LUXE10" does not match.
func Normalize(code string) string {
	return strings.ToUpper(code)
}

// Lookup returns the normalized code when it is known.
func (r *Registry) Lookup(code string) (string, error) {
	n := Normalize(code)
	if n == "" {
		return "", errors.Wrap(ErrInvalidCoupon, "empty code")
	}
	if _, ok := r.codes[n]; !ok {
		return "", errors.Wrapf(ErrInvalidCoupon, "lookup %q", n)
	}
	return n, nil
}

// Valid reports whether code is accepted by the registry.
func (r *Registry) Valid(code string) bool {
	_, err := r.Lookup(code)
	return err == nil
}
