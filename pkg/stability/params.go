package stability

// Params is the flat record of tuning constants the analyzer is driven
// by. All of its fields are overridable by pkg/config's zygomys script;
// Defaults() returns the literal values the test-suite scenarios use.
type Params struct {
	BridgeDistance                             float32
	BridgeDistanceDecreaseByCurvatureFactor    float32
	MinDistanceBetweenSupportPoints            float32
	SupportPointsInterfaceRadius               float32
	FilamentDensity                            float32
	GravityConstant                            float32
	MaxAcceleration                            float32
	StandardExtruderConflictForce              float32
	MalformationsAdditiveConflictExtruderForce float32
	BedAdhesionYieldStrength                   float32
	MaterialYieldStrength                      float32

	// RasterResolution is the PixelGrid pixel size. The original ties
	// this to the external-perimeter flow width of the object's last
	// layer; callers that don't have that handy can leave it zero and
	// CheckExtrusionsAndBuildGraph will derive it the same way.
	RasterResolution float32

	// Verbose gates the debug island/connection graph dump and a
	// per-layer progress line in the global pass. IsStableWhileExtruding
	// emits no per-line torque diagnostics.
	Verbose bool
}

// Defaults returns the literal Params values the concrete test
// scenarios are specified against.
func Defaults() Params {
	return Params{
		BridgeDistance:                              2.0,
		BridgeDistanceDecreaseByCurvatureFactor:      5.0,
		MinDistanceBetweenSupportPoints:              1.0,
		SupportPointsInterfaceRadius:                 0.6,
		FilamentDensity:                              1.25e-3,
		GravityConstant:                              9.81,
		MaxAcceleration:                              1000,
		StandardExtruderConflictForce:                10,
		MalformationsAdditiveConflictExtruderForce:   5,
		BedAdhesionYieldStrength:                      0.018,
		MaterialYieldStrength:                        0.008,
	}
}
