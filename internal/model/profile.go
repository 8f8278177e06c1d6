package model

import (
	"slices"
	"time"
)

// Profile defaults applied on first run and after a reset.
const (
	DefaultProfileName   = "Friend"
	DefaultMonthlyBudget = 15000.0
	DefaultCO2Goal       = 50.0
)

// Profile is the single user profile of an installation.
// MonthlyBudget and CO2Goal are advisory targets only.
type Profile struct {
	JoinedDate    time.Time
	Name          string
	Badges        []string
	MonthlyBudget float64
	CO2Goal       float64
}

// NewProfile returns a profile with default settings joined at now.
func NewProfile(now time.Time) Profile {
	return Profile{
		Name:          DefaultProfileName,
		MonthlyBudget: DefaultMonthlyBudget,
		CO2Goal:       DefaultCO2Goal,
		Badges:        []string{},
		JoinedDate:    now.UTC().Truncate(time.Second),
	}
}

// HasBadge reports whether the badge has already been unlocked.
func (p *Profile) HasBadge(id string) bool {
	return slices.Contains(p.Badges, id)
}

// Unlock appends id to the unlocked badges. It returns false, leaving the
// profile untouched, when the badge is already unlocked.
func (p *Profile) Unlock(id string) bool {
	if p.HasBadge(id) {
		return false
	}
	p.Badges = append(p.Badges, id)
	return true
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := p
	c.Badges = slices.Clone(p.Badges)
	if c.Badges == nil {
		c.Badges = []string{}
	}
	return c
}
