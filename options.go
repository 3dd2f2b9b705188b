package hqx

// Option configures a Filter during creation.
//
// Example:
//
//	// Software rendering on 4 workers
//	f, err := hqx.New(lut, hqx.DefaultConfig(2), hqx.WithMode(hqx.ModeCPU), hqx.WithWorkers(4))
type Option func(*options)

// options holds optional Filter configuration.
type options struct {
	mode      ExecMode
	workers   int
	strictLUT bool
}

// defaultOptions returns the default filter options.
func defaultOptions() options {
	return options{
		mode:    ModeAuto,
		workers: 0, // GOMAXPROCS
	}
}

// WithMode selects the execution backend.
func WithMode(m ExecMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithWorkers sets the number of CPU workers. Zero or negative means
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithStrictLUT makes New verify that every LUT entry has a positive
// weight sum. Off by default: the reference assets guarantee it and the
// check scans the whole table.
func WithStrictLUT() Option {
	return func(o *options) {
		o.strictLUT = true
	}
}
