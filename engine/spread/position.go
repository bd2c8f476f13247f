package spread

import "github.com/Carmen-Shannon/oxy-spread/common"

// updateWeightedPositions pushes each panel away from the center in proportion to its spacing weight,
// never further than its safe limit, and damps the live offset toward the new target.
func (d *driver) updateWeightedPositions(sf, dt float32) {
	f := common.DampFactor(d.positionDamping, dt, d.refDt)
	for _, rec := range d.records {
		raw := rec.Direction * sf * d.spreadGain * rec.SpacingWeight
		rec.TargetOffset = rec.BaseOffset + common.Clamp(raw, -rec.SafeLimit, rec.SafeLimit)
		rec.CurrentOffset = common.Damp(rec.CurrentOffset, rec.TargetOffset, f)
	}
}

// updateChainedPositions pins the first panel to its rest position and places every following panel
// one widened rest distance past its already-updated predecessor. No damping is applied, so the
// panels can never swap order.
func (d *driver) updateChainedPositions(sf float32) {
	first := d.records[0]
	first.TargetOffset = first.BaseOffset
	first.CurrentOffset = first.BaseOffset

	for i := 1; i < len(d.records); i++ {
		prev, rec := d.records[i-1], d.records[i]
		spacing := prev.DistanceToNext
		rec.TargetOffset = prev.CurrentOffset + spacing + spacing*d.chainedGain*sf
		rec.CurrentOffset = rec.TargetOffset
	}
}
