// Package messages holds the logical wire schema shared by the HTTP and
// stream collaborators. It has no dependencies on ebiten so it can be used
// from headless code and tests.
package messages

import (
	"errors"
	"fmt"

	"github.com/automoto/splashed/shared/geometry"
)

// EntityID is server-assigned and may be reused after removal.
type EntityID string

// EntityType tags the variant carried by EntityData.
type EntityType int

const (
	EntityPlayer EntityType = iota
	EntityProjectile
	EntityPowerup
	EntityAsteroid
)

var entityTypeNames = map[EntityType]string{
	EntityPlayer:     "player",
	EntityProjectile: "projectile",
	EntityPowerup:    "powerup",
	EntityAsteroid:   "asteroid",
}

func (t EntityType) String() string {
	if name, ok := entityTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ErrEnum is returned when a type name is not recognised.
var ErrEnum = errors.New("unknown enum name")

func (t EntityType) MarshalText() ([]byte, error) {
	name, ok := entityTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: entity type %d", ErrEnum, int(t))
	}
	return []byte(name), nil
}

func (t *EntityType) UnmarshalText(b []byte) error {
	for k, name := range entityTypeNames {
		if name == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("%w: entity type %q", ErrEnum, b)
}

// EntityData is one entity record as sent by the server. Optional fields are
// pointers so that a zero value can be told apart from an absent one.
type EntityData struct {
	ID         EntityID         `json:"id"`
	Type       EntityType       `json:"type"`
	Position   *geometry.Vector `json:"position,omitempty"`
	Velocity   *geometry.Vector `json:"velocity,omitempty"`
	Rotation   *float64         `json:"rotation,omitempty"`
	Player     *PlayerData      `json:"player,omitempty"`
	Projectile *ProjectileData  `json:"projectile,omitempty"`
	Powerup    *PowerupData     `json:"powerup,omitempty"`
	Asteroid   *AsteroidData    `json:"asteroid,omitempty"`
}

type PlayerData struct {
	Username string `json:"username"`
	Score    uint32 `json:"score"`
	Flags    uint32 `json:"flags"`
}

type ProjectileData struct {
	Flags    uint32 `json:"flags"`
	Lifetime int    `json:"lifetime"`
}

type PowerupData struct {
	Ability uint32 `json:"ability"`
}

// AsteroidData points form a closed outline local to the asteroid origin.
type AsteroidData struct {
	Points []geometry.Vector `json:"points"`
}
