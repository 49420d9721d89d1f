package config

import (
	"strings"
	"testing"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/stability"
)

func TestLoadEmptySourceReturnsDefaults(t *testing.T) {
	l := NewLoader()
	params, errs, err := l.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Load() errs = %v, want none", errs)
	}
	if params != stability.Defaults() {
		t.Errorf("Load(\"\") = %+v, want Defaults()", params)
	}
}

func TestLoadOverridesBridgeDistance(t *testing.T) {
	l := NewLoader()
	params, errs, err := l.Load("(bridge_distance 3.5)")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Load() errs = %v, want none", errs)
	}
	if params.BridgeDistance != 3.5 {
		t.Errorf("BridgeDistance = %v, want 3.5", params.BridgeDistance)
	}
	defaults := stability.Defaults()
	if params.MinDistanceBetweenSupportPoints != defaults.MinDistanceBetweenSupportPoints {
		t.Errorf("MinDistanceBetweenSupportPoints changed unexpectedly: %v", params.MinDistanceBetweenSupportPoints)
	}
}

func TestLoadOverridesMultipleFields(t *testing.T) {
	l := NewLoader()
	source := `
(bridge_distance 1.5)
(min_distance_between_support_points 2.0)
(verbose 1)
`
	params, errs, err := l.Load(source)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Load() errs = %v, want none", errs)
	}
	if params.BridgeDistance != 1.5 {
		t.Errorf("BridgeDistance = %v, want 1.5", params.BridgeDistance)
	}
	if params.MinDistanceBetweenSupportPoints != 2.0 {
		t.Errorf("MinDistanceBetweenSupportPoints = %v, want 2.0", params.MinDistanceBetweenSupportPoints)
	}
	if !params.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestLoadSyntaxErrorReturnsDefaultsAndError(t *testing.T) {
	l := NewLoader()
	params, errs, err := l.Load("(bridge_distance")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil (non-fatal parse error)", err)
	}
	if len(errs) == 0 {
		t.Fatal("expected at least one LoadError for unbalanced parens")
	}
	if params != stability.Defaults() {
		t.Errorf("Load() on syntax error = %+v, want Defaults()", params)
	}
}

func TestLoadErrorRuntimeErrorFromWrongArgCount(t *testing.T) {
	l := NewLoader()
	_, errs, err := l.Load("(bridge_distance 1.0 2.0)")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(errs) == 0 {
		t.Fatal("expected a LoadError for the wrong argument count")
	}
	if !strings.Contains(errs[0].Message, "bridge_distance") {
		t.Errorf("LoadError.Message = %q, want it to mention bridge_distance", errs[0].Message)
	}
}
