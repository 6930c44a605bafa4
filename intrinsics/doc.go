// Package intrinsics installs the guest-visible functions into a scripting
// environment.
//
// Registration is explicit: the target environment is a parameter and the
// result is a handle describing what was installed. Nothing is stored in
// package-level state, so several environments can be set up side by side.
//
//	env := intrinsics.NewGlobals()
//	env.SetGlobal("Math", intrinsics.NewObject())
//
//	reg, err := intrinsics.Register(env, b)
//	if err != nil {
//	    return err
//	}
//	reg.Logger()("warn", "disk low")
//
// Installed bindings:
//
//	Math.random   func() float64, uniform on [0, 1)
//	javy_logger   func(level, message string), fire and forget
package intrinsics
