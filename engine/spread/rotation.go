package spread

import (
	"time"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/charmbracelet/harmonica"
)

// updateYaw moves every panel's live yaw toward its committed target.
func (d *driver) updateYaw(dt float32) {
	if d.yawSmoothing == YawSmoothingSpring {
		if dt <= 0 {
			return
		}
		spring := harmonica.NewSpring(float64(dt), d.springFrequency, d.springDamping)
		for _, rec := range d.records {
			pos, vel := spring.Update(float64(rec.CurrentYaw), float64(rec.YawVelocity), float64(rec.TargetYaw))
			rec.CurrentYaw = float32(pos)
			rec.YawVelocity = float32(vel)
		}
		return
	}

	for _, rec := range d.records {
		f := common.DampFactor(rec.DampingRate, dt, d.refDt)
		rec.CurrentYaw = common.Damp(rec.CurrentYaw, rec.TargetYaw, f)
	}
}

// armCommits schedules a delayed overwrite of each panel's target yaw with the current candidate.
// Near full spread the candidate leans a little further outward along the panel's direction.
func (d *driver) armCommits(now time.Time, sf, targetYaw float32) {
	boost := float32(0)
	if sf > d.boostThreshold {
		boost = d.boostYaw
	}
	for _, rec := range d.records {
		d.commits.arm(rec, now, targetYaw+rec.Direction*boost)
	}
}

// updateTilt recomputes the depth-axis tilt from scratch: even panels lean one way, odd panels the other.
func (d *driver) updateTilt(sf float32) {
	mag := sf * d.tiltMax
	for i := range d.tilts {
		if i%2 == 0 {
			d.tilts[i] = mag
		} else {
			d.tilts[i] = -mag
		}
	}
}

// updateChainedRotation damps every panel's pitch toward the vertical pointer position and its roll
// toward the horizontal one, both scaled by the chained rotation angle. Roll shares the tilt slot.
func (d *driver) updateChainedRotation(px, py, dt float32) {
	f := common.DampFactor(d.positionDamping, dt, d.refDt)
	pitch := common.Clamp(py, -1, 1) * d.chainedRotation
	roll := common.Clamp(px, -1, 1) * d.chainedRotation
	for i := range d.tilts {
		d.pitches[i] = common.Damp(d.pitches[i], pitch, f)
		d.tilts[i] = common.Damp(d.tilts[i], roll, f)
	}
}
