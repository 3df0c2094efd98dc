package models

import (
	"fmt"
	"sort"

	"github.com/avosk/flightsim/internal/sim"
)

// entry ties a force model constructor to the vehicle traits the core
// needs alongside it.
type entry struct {
	build          func() sim.ForceModel
	groundBehavior sim.GroundBehavior
	frameHeight    float64
	mass           float64
}

var registry = map[string]entry{
	"quadx": {
		build:          func() sim.ForceModel { return NewQuadX() },
		groundBehavior: sim.GroundBehaviorNoMovement,
		frameHeight:    0.1,
		mass:           1.5,
	},
	"glider": {
		build:          func() sim.ForceModel { return NewGlider() },
		groundBehavior: sim.GroundBehaviorForwardOnly,
		frameHeight:    0.15,
		mass:           2.0,
	},
	"tailsitter": {
		build:          func() sim.ForceModel { return NewQuadX() },
		groundBehavior: sim.GroundBehaviorTailsitter,
		frameHeight:    0.25,
		mass:           1.2,
	},
}

// New builds a fully wired vehicle for a registered airframe name.
func New(name string) (*sim.Aircraft, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown airframe: %s", name)
	}
	a := sim.NewAircraft(e.build())
	a.SetGroundBehavior(e.groundBehavior)
	a.SetFrameHeight(e.frameHeight)
	a.SetMass(e.mass)
	return a, nil
}

// List returns the registered airframe names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
