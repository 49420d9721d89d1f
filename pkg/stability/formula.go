package stability

import "github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"

// IsStableWhileExtruding estimates the force a support point would need to
// counteract while extrudedLine is being laid down on top of this part, at
// layer height layerZ, given the weakest inter-layer connection tracked
// for the island on its path down to the bed. A positive return
// means the bed or the weakest inter-layer connection is predicted to fail
// under the combined weight, movement, and extruder-conflict torques, and
// the caller should place a support; non-positive means the part holds.
//
// Two failure modes are checked in order: first whether the whole part
// could peel off the bed, then whether that weakest connection could
// snap. A
// part with negligible sticking area or connection area has nothing to
// hold it down at all, which is reported as maximally unstable (1.0)
// rather than skipped.
func (p *ObjectPart) IsStableWhileExtruding(connection IslandConnection, extrudedLine geometry.ExtrusionLine, layerZ float32, params Params) float32 {
	lineDir := extrudedLine.B.Sub(extrudedLine.A).Normalized()

	massCentroid := p.VolumeCentroidAccumulator.DivScalar(p.Volume)
	mass := p.Volume * params.FilamentDensity
	weight := mass * params.GravityConstant

	movementForce := params.MaxAcceleration * mass

	extruderPressureDirection := geometry.To3(lineDir, -extrudedLine.Malformation*0.5).Normalized().To64()
	endpoint := geometry.To3(extrudedLine.B, layerZ).To64()

	conflictFactor := extrudedLine.Malformation
	if conflictFactor > 1.0 {
		conflictFactor = 1.0
	}
	extruderConflictForce := params.StandardExtruderConflictForce + conflictFactor*params.MalformationsAdditiveConflictExtruderForce

	if p.StickingArea >= momentEpsilon {
		bedCentroid := p.StickingCentroidAccumulator.DivScalar(p.StickingArea)
		bedYieldTorque := sectionModulus(p.StickingCentroidAccumulator, p.StickingSecondMomentAccumulator, p.StickingArea, lineDir) * params.BedAdhesionYieldStrength

		bedWeightArm := bedCentroid.XY().Sub(massCentroid.XY()).Norm()
		bedWeightTorque := bedWeightArm * weight

		bedMovementArm := maxF32(0, massCentroid.Z-bedCentroid.Z)
		bedMovementTorque := movementForce * bedMovementArm

		bedConflictTorqueArm := float32(geometry.DistancePointToLine64(
			endpoint, addVec64(endpoint, extruderPressureDirection), bedCentroid.To64()))
		bedExtruderConflictTorque := extruderConflictForce * bedConflictTorqueArm

		bedTotalTorque := bedMovementTorque + bedExtruderConflictTorque + bedWeightTorque - bedYieldTorque

		if bedTotalTorque > 0 {
			return bedTotalTorque / bedConflictTorqueArm
		}
	} else {
		return 1.0
	}

	if connection.Area < momentEpsilon {
		return 1.0
	}

	connCentroid := connection.CentroidAccumulator.DivScalar(connection.Area)
	connYieldTorque := sectionModulus(connection.CentroidAccumulator, connection.SecondMomentAccumulator, connection.Area, lineDir) * params.MaterialYieldStrength

	connWeightArm := connCentroid.XY().Sub(massCentroid.XY()).Norm()
	connWeightTorque := connWeightArm * weight * (connCentroid.Z / layerZ)

	connMovementArm := maxF32(0, massCentroid.Z-connCentroid.Z)
	connMovementTorque := movementForce * connMovementArm

	connConflictTorqueArm := float32(geometry.DistancePointToLine64(
		endpoint, addVec64(endpoint, extruderPressureDirection), connCentroid.To64()))
	connExtruderConflictTorque := extruderConflictForce * connConflictTorqueArm

	connTotalTorque := connMovementTorque + connExtruderConflictTorque + connWeightTorque - connYieldTorque

	return connTotalTorque / connConflictTorqueArm
}

func addVec64(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
