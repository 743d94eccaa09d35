package palindrome

// DefaultMaxSteps bounds a single trace.
const DefaultMaxSteps = 2_000_000

type options struct {
	locale   Locale
	maxSteps int
}

// Option configures a traced run.
type Option func(*options)

// WithLocale selects the description language.
func WithLocale(l Locale) Option {
	return func(o *options) {
		o.locale = l
	}
}

// WithMaxSteps caps the trace length. A run that would exceed it fails
// with ErrInputTooLarge rather than returning a truncated trace. n <= 0
// disables the cap.
func WithMaxSteps(n int) Option {
	return func(o *options) {
		o.maxSteps = n
	}
}

func buildOptions(opts []Option) options {
	o := options{locale: English, maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
