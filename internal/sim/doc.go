// Package sim is the physics core of the flight-dynamics simulator: a
// six-degree-of-freedom rigid body integrated forward in time from
// actuator commands, with synthetic sensor derivation, ground contact
// handling, wind and turbulence, and real-time frame pacing.
//
// One Aircraft is one simulated vehicle. All of its mutable state is
// owned by that instance and advanced tick by tick from a single
// goroutine; the only blocking operation is the pacing sleep between
// ticks, which can be disabled without affecting the physics.
package sim
