package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShip_CargoFollowsType(t *testing.T) {
	unloader := newShip(1, ShipTypeUnload, 100)
	loader := newShip(2, ShipTypeLoad, 100)

	assert.Equal(t, "ship-1", unloader.ID)
	assert.True(t, unloader.Cargo, "unload ships arrive loaded")
	assert.False(t, loader.Cargo, "load ships arrive empty")
	assert.False(t, unloader.HasPier())
	assert.Equal(t, StateSpawning, loader.State)
	assert.Equal(t, int64(100), loader.SpawnTime)
}

func TestShipPolicies_ServiceSwapsPierContent(t *testing.T) {
	for _, st := range ShipTypes {
		pol := policyFor(st)
		assert.NotEqual(t, pol.RequiredContent, pol.ContentAfter, st.String())
		assert.NotEqual(t, pol.InitialCargo, pol.CargoAfterService, st.String())
	}
	assert.Equal(t, PierEmpty, RequiredContent(ShipTypeUnload))
	assert.Equal(t, PierFilled, RequiredContent(ShipTypeLoad))
}

func TestPolicyFor_UnknownType_Panics(t *testing.T) {
	assert.Panics(t, func() { policyFor(ShipType(9)) })
}

func TestShipType_TextForm(t *testing.T) {
	b, err := ShipTypeLoad.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "load", string(b))
	assert.Equal(t, "unload", ShipTypeUnload.String())
	assert.Equal(t, "GREEN (load)", newShip(1, ShipTypeLoad, 0).Label())
}

func TestShipType_UnmarshalText(t *testing.T) {
	var st ShipType
	assert.NoError(t, st.UnmarshalText([]byte("load")))
	assert.Equal(t, ShipTypeLoad, st)
	assert.Error(t, st.UnmarshalText([]byte("blue")))
}
