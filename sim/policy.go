package sim

import "fmt"

// shipPolicy captures everything that differs between ship types: which pier
// content a ship may reserve, what servicing does to the pier and to the
// ship's cargo, and how the ship is labelled.
type shipPolicy struct {
	Label             string
	Color             string
	RequiredContent   PierContent // content a free pier must have to be reserved
	ContentAfter      PierContent // pier content once servicing completes
	InitialCargo      bool
	CargoAfterService bool
}

// shipPolicies is the single source of truth for type-specific behaviour.
// Unload ships fill empty piers; load ships empty filled piers.
var shipPolicies = map[ShipType]shipPolicy{
	ShipTypeUnload: {
		Label:             "RED (unload)",
		Color:             "red",
		RequiredContent:   PierEmpty,
		ContentAfter:      PierFilled,
		InitialCargo:      true,
		CargoAfterService: false,
	},
	ShipTypeLoad: {
		Label:             "GREEN (load)",
		Color:             "green",
		RequiredContent:   PierFilled,
		ContentAfter:      PierEmpty,
		InitialCargo:      false,
		CargoAfterService: true,
	},
}

func policyFor(t ShipType) shipPolicy {
	p, ok := shipPolicies[t]
	if !ok {
		panic(fmt.Sprintf("policyFor: unknown ship type %d", int(t)))
	}
	return p
}

// RequiredContent returns the pier content a ship of type t may reserve.
func RequiredContent(t ShipType) PierContent {
	return policyFor(t).RequiredContent
}
