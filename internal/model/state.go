package model

import (
	"slices"
	"time"
)

// State is the whole persisted document: the purchase history and the profile
// that owns it. History is append-only; entries are only removed by a full reset.
type State struct {
	Purchases []Purchase
	Profile   Profile
}

// NewState returns an empty history with a default profile.
func NewState(now time.Time) *State {
	return &State{
		Purchases: []Purchase{},
		Profile:   NewProfile(now),
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	purchases := slices.Clone(s.Purchases)
	if purchases == nil {
		purchases = []Purchase{}
	}
	return &State{
		Purchases: purchases,
		Profile:   s.Profile.Clone(),
	}
}
