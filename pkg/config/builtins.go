package config

import (
	"fmt"

	"github.com/glycerine/zygomys/zygo"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/stability"
)

// toFloat32 extracts a float32 from a Sexp (SexpInt or SexpFloat).
func toFloat32(s zygo.Sexp) (float32, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float32(v.Val), nil
	case *zygo.SexpFloat:
		return float32(v.Val), nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// setter registers a single-argument numeric builtin named name that
// writes its argument into the Params field dst points at, and returns
// the value it set (so scripts can chain or print it).
func setter(env *zygo.Zlisp, name string, dst *float32) {
	env.AddFunction(name, func(env *zygo.Zlisp, fname string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument, got %d", fname, len(args))
		}
		v, err := toFloat32(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", fname, err)
		}
		*dst = v
		return args[0], nil
	})
}

// registerBuiltins installs one setter per stability.Params field into a
// zygomys environment. Names are underscored (bridge_distance, not
// bridge-distance) since zygomys reads a hyphen as the subtraction
// operator — a config script has no prose worth preprocessing for, so
// the underscored spelling is used directly instead of adding a
// kebab-case rewriter for a single-purpose settings file.
func registerBuiltins(env *zygo.Zlisp, params *stability.Params) {
	setter(env, "bridge_distance", &params.BridgeDistance)
	setter(env, "bridge_distance_decrease_by_curvature_factor", &params.BridgeDistanceDecreaseByCurvatureFactor)
	setter(env, "min_distance_between_support_points", &params.MinDistanceBetweenSupportPoints)
	setter(env, "support_points_interface_radius", &params.SupportPointsInterfaceRadius)
	setter(env, "filament_density", &params.FilamentDensity)
	setter(env, "gravity_constant", &params.GravityConstant)
	setter(env, "max_acceleration", &params.MaxAcceleration)
	setter(env, "standard_extruder_conflict_force", &params.StandardExtruderConflictForce)
	setter(env, "malformations_additive_conflict_extruder_force", &params.MalformationsAdditiveConflictExtruderForce)
	setter(env, "bed_adhesion_yield_strength", &params.BedAdhesionYieldStrength)
	setter(env, "material_yield_strength", &params.MaterialYieldStrength)
	setter(env, "raster_resolution", &params.RasterResolution)

	env.AddFunction("verbose", func(env *zygo.Zlisp, fname string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument, got %d", fname, len(args))
		}
		// Scripts pass 0/1 rather than a boolean literal, staying on the
		// narrow Sexp surface (ints, floats, strings) every other builtin
		// here already uses.
		f, err := toFloat32(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", fname, err)
		}
		params.Verbose = f != 0
		return args[0], nil
	})
}
