package components

import (
	"github.com/automoto/splashed/shared/messages"
	"github.com/yohamta/donburi"
)

// TrailData is a generation-checked handle to a player whose position
// history is drawn underneath the entities. The trail ends when the id is
// gone from the entity map or now belongs to a newer Player.
type TrailData struct {
	ID         messages.EntityID
	Generation uint64
}

var Trail = donburi.NewComponentType[TrailData]()
