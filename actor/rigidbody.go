package actor

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrSingularTensor is returned when a supplied inertia tensor cannot
// be inverted.
var ErrSingularTensor = errors.New("actor: inertia tensor is singular")

// sleepEpsilon is the global motion threshold below which an eligible
// body is put to sleep. Tune with SetSleepEpsilon for the whole scene,
// not per body.
var sleepEpsilon = 0.3

// SetSleepEpsilon sets the global sleep threshold.
func SetSleepEpsilon(value float64) {
	sleepEpsilon = value
}

func SleepEpsilon() float64 {
	return sleepEpsilon
}

const detEpsilon = 1e-12

// RigidBody is the full 6-DOF simulated object: a particle with
// orientation, angular velocity and an inertia tensor.
//
// The transform matrix and the world-space inverse inertia tensor are
// derived caches. They are valid only after the most recent
// CalculateDerivedData call; any direct write to Position or
// Orientation invalidates them until recomputed. Integrate recomputes
// them itself.
type RigidBody struct {
	Position mgl64.Vec3

	// Orientation in world space. Kept at unit length by
	// CalculateDerivedData.
	Orientation mgl64.Quat

	Velocity mgl64.Vec3

	// Rotation is the angular velocity in world space (rad/s).
	Rotation mgl64.Vec3

	// Acceleration holds the persistent acceleration, typically gravity.
	Acceleration mgl64.Vec3

	// LinearDamping and AngularDamping decay the velocities as
	// damping^duration each step. 1 means no decay.
	LinearDamping  float64
	AngularDamping float64

	inverseMass float64

	// Inverse inertia tensor in body space, set once at configuration
	// time from an invertible tensor.
	inverseInertiaBody mgl64.Mat3

	// Derived caches, see CalculateDerivedData.
	inverseInertiaWorld mgl64.Mat3
	transformMatrix     mgl64.Mat4

	forceAccum  mgl64.Vec3
	torqueAccum mgl64.Vec3

	lastFrameAcceleration mgl64.Vec3

	// motion is the recency-weighted kinetic energy scalar driving the
	// sleep decision.
	motion   float64
	isAwake  bool
	canSleep bool
}

// NewRigidBody creates a body at rest with identity orientation, no
// damping and infinite mass. Bodies start asleep until SetAwake(true)
// or a force wakes them.
func NewRigidBody() *RigidBody {
	return &RigidBody{
		Orientation:    mgl64.QuatIdent(),
		LinearDamping:  1.0,
		AngularDamping: 1.0,
		canSleep:       true,
	}
}

// SetMass stores the reciprocal of the given mass.
func (rb *RigidBody) SetMass(mass float64) error {
	if mass == 0 {
		return ErrZeroMass
	}
	rb.inverseMass = 1.0 / mass

	return nil
}

// Mass returns the body mass, +Inf for an immovable body.
func (rb *RigidBody) Mass() float64 {
	if rb.inverseMass == 0 {
		return math.Inf(1)
	}

	return 1.0 / rb.inverseMass
}

func (rb *RigidBody) SetInverseMass(inverseMass float64) {
	rb.inverseMass = inverseMass
}

func (rb *RigidBody) InverseMass() float64 {
	return rb.inverseMass
}

func (rb *RigidBody) HasFiniteMass() bool {
	return rb.inverseMass > 0
}

// SetInertiaTensor inverts and stores the given body-space inertia
// tensor. The tensor must be invertible.
func (rb *RigidBody) SetInertiaTensor(tensor mgl64.Mat3) error {
	if math.Abs(tensor.Det()) < detEpsilon {
		return ErrSingularTensor
	}
	rb.inverseInertiaBody = tensor.Inv()

	return nil
}

// SetInverseInertiaTensor stores the body-space inverse inertia tensor
// directly. The tensor must still correspond to an invertible inertia.
func (rb *RigidBody) SetInverseInertiaTensor(inverse mgl64.Mat3) error {
	if math.Abs(inverse.Det()) < detEpsilon {
		return ErrSingularTensor
	}
	rb.inverseInertiaBody = inverse

	return nil
}

func (rb *RigidBody) InverseInertiaTensor() mgl64.Mat3 {
	return rb.inverseInertiaBody
}

// InverseInertiaTensorWorld returns the derived world-space inverse
// inertia tensor. Valid only after CalculateDerivedData.
func (rb *RigidBody) InverseInertiaTensorWorld() mgl64.Mat3 {
	return rb.inverseInertiaWorld
}

// TransformMatrix returns the derived world transform. Valid only
// after CalculateDerivedData.
func (rb *RigidBody) TransformMatrix() mgl64.Mat4 {
	return rb.transformMatrix
}

// PointInWorldSpace converts a body-local point to world space using
// the derived transform.
func (rb *RigidBody) PointInWorldSpace(point mgl64.Vec3) mgl64.Vec3 {
	return rb.transformMatrix.Mul4x1(point.Vec4(1)).Vec3()
}

// LastFrameAcceleration returns the linear acceleration, including
// accumulated forces, applied during the previous integration step.
func (rb *RigidBody) LastFrameAcceleration() mgl64.Vec3 {
	return rb.lastFrameAcceleration
}

// CalculateDerivedData normalizes the orientation and rebuilds the
// transform matrix and the world-space inverse inertia tensor
// I_world^-1 = R * I_body^-1 * R^T.
//
// Must be called after any direct write to Position or Orientation
// before the derived members are read.
func (rb *RigidBody) CalculateDerivedData() {
	rb.Orientation = rb.Orientation.Normalize()
	rb.transformMatrix = transformMatrix(rb.Position, rb.Orientation)

	R := rb.transformMatrix.Mat3()
	rb.inverseInertiaWorld = R.Mul3(rb.inverseInertiaBody).Mul3(R.Transpose())
}

// AddForce applies a force at the center of mass for the next step.
// No torque results. Wakes the body.
func (rb *RigidBody) AddForce(force mgl64.Vec3) {
	rb.forceAccum = rb.forceAccum.Add(force)
	rb.isAwake = true
}

// AddTorque accumulates a torque for the next step. Wakes the body.
func (rb *RigidBody) AddTorque(torque mgl64.Vec3) {
	rb.torqueAccum = rb.torqueAccum.Add(torque)
	rb.isAwake = true
}

// AddForceAtPoint applies a force at a world-space point, producing
// torque about the center of mass. Wakes the body.
func (rb *RigidBody) AddForceAtPoint(force, point mgl64.Vec3) {
	arm := point.Sub(rb.Position)

	rb.forceAccum = rb.forceAccum.Add(force)
	rb.torqueAccum = rb.torqueAccum.Add(arm.Cross(force))
	rb.isAwake = true
}

// AddForceAtBodyPoint applies a force at a body-local point. Relies on
// the derived transform being current.
func (rb *RigidBody) AddForceAtBodyPoint(force, point mgl64.Vec3) {
	rb.AddForceAtPoint(force, rb.PointInWorldSpace(point))
}

func (rb *RigidBody) ClearAccumulators() {
	rb.forceAccum = mgl64.Vec3{}
	rb.torqueAccum = mgl64.Vec3{}
}

// IsAwake reports whether the body participates in integration.
func (rb *RigidBody) IsAwake() bool {
	return rb.isAwake
}

// SetAwake wakes or sleeps the body. Waking seeds the motion metric to
// twice the sleep epsilon so the body is not immediately re-slept;
// sleeping zeroes both velocities.
func (rb *RigidBody) SetAwake(awake bool) {
	if awake {
		rb.isAwake = true
		rb.motion = sleepEpsilon * 2.0
		return
	}

	rb.isAwake = false
	rb.Velocity = mgl64.Vec3{}
	rb.Rotation = mgl64.Vec3{}
}

func (rb *RigidBody) CanSleep() bool {
	return rb.canSleep
}

// SetCanSleep controls sleep eligibility. Bodies that may not sleep
// are woken immediately.
func (rb *RigidBody) SetCanSleep(canSleep bool) {
	rb.canSleep = canSleep
	if !canSleep && !rb.isAwake {
		rb.SetAwake(true)
	}
}

// Motion returns the recency-weighted kinetic energy scalar.
func (rb *RigidBody) Motion() float64 {
	return rb.motion
}

// Integrate advances the body by duration seconds. Asleep bodies are
// skipped entirely. The orientation is advanced by
// q += 0.5*dt*quat(rotation,0)*q and renormalized through
// CalculateDerivedData; both accumulators are cleared afterwards.
func (rb *RigidBody) Integrate(duration float64) {
	if !rb.isAwake {
		return
	}

	rb.lastFrameAcceleration = rb.Acceleration.Add(rb.forceAccum.Mul(rb.inverseMass))
	angularAcceleration := rb.inverseInertiaWorld.Mul3x1(rb.torqueAccum)

	rb.Velocity = rb.Velocity.Add(rb.lastFrameAcceleration.Mul(duration))
	rb.Rotation = rb.Rotation.Add(angularAcceleration.Mul(duration))

	rb.Velocity = rb.Velocity.Mul(math.Pow(rb.LinearDamping, duration))
	rb.Rotation = rb.Rotation.Mul(math.Pow(rb.AngularDamping, duration))

	rb.Position = rb.Position.Add(rb.Velocity.Mul(duration))

	omega := mgl64.Quat{W: 0, V: rb.Rotation}
	rb.Orientation = rb.Orientation.Add(omega.Mul(rb.Orientation).Scale(0.5 * duration))

	rb.CalculateDerivedData()
	rb.ClearAccumulators()

	if rb.canSleep {
		rb.updateSleepState(duration)
	}
}

// updateSleepState blends the current kinetic energy into the motion
// metric with an exponential recency weight, puts the body to sleep
// below the global threshold, and clamps the metric to ten times the
// threshold so a burst of motion cannot postpone sleep indefinitely.
func (rb *RigidBody) updateSleepState(duration float64) {
	currentMotion := rb.Velocity.Dot(rb.Velocity) + rb.Rotation.Dot(rb.Rotation)
	bias := math.Pow(0.5, duration)
	rb.motion = bias*rb.motion + (1-bias)*currentMotion

	if rb.motion < sleepEpsilon {
		rb.SetAwake(false)
	} else if rb.motion > 10*sleepEpsilon {
		rb.motion = 10 * sleepEpsilon
	}
}
