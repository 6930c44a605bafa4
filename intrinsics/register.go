package intrinsics

import (
	"math/rand"

	"github.com/wippyai/wasiraptor/bridge"
	"github.com/wippyai/wasiraptor/errors"
)

// Binding names.
const (
	MathObject   = "Math"
	RandomName   = "random"
	LoggerGlobal = "javy_logger"
)

// Option configures Register.
type Option func(*options)

type options struct {
	random     func() float64
	loggerName string
	skipRandom bool
}

// WithRandom replaces the uniform generator behind Math.random.
func WithRandom(fn func() float64) Option {
	return func(o *options) {
		o.random = fn
	}
}

// WithoutRandom leaves Math untouched.
func WithoutRandom() Option {
	return func(o *options) {
		o.skipRandom = true
	}
}

// WithLoggerName installs the logger under a different global name.
func WithLoggerName(name string) Option {
	return func(o *options) {
		o.loggerName = name
	}
}

// Registration describes the bindings installed into one environment.
type Registration struct {
	env    Environment
	logger func(level, message string)
	random func() float64
	names  []string
}

// Register installs Math.random and the logger function into env.
// The Math global must already exist.
func Register(env Environment, b *bridge.Bridge, opts ...Option) (*Registration, error) {
	o := options{
		random:     rand.Float64,
		loggerName: LoggerGlobal,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if env == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, "environment cannot be nil")
	}
	if b == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, "bridge cannot be nil")
	}

	reg := &Registration{env: env, logger: b.Func()}

	if !o.skipRandom {
		if _, ok := env.Global(MathObject); !ok {
			return nil, errors.NotFound(errors.PhaseRegister, "global", MathObject)
		}
		if err := env.SetProperty(MathObject, RandomName, o.random); err != nil {
			return nil, errors.Registration(errors.PhaseRegister, MathObject+"."+RandomName, err)
		}
		reg.random = o.random
		reg.names = append(reg.names, MathObject+"."+RandomName)
	}

	if err := env.SetGlobal(o.loggerName, reg.logger); err != nil {
		return nil, errors.Registration(errors.PhaseRegister, o.loggerName, err)
	}
	reg.names = append(reg.names, o.loggerName)

	return reg, nil
}

// Names lists the installed bindings in installation order.
func (r *Registration) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Logger returns the installed logger function.
func (r *Registration) Logger() func(level, message string) {
	return r.logger
}

// Random returns the installed random function, or nil when skipped.
func (r *Registration) Random() func() float64 {
	return r.random
}

// Environment returns the environment the bindings were installed into.
func (r *Registration) Environment() Environment {
	return r.env
}
