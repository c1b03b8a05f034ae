package systems

import (
	"strconv"

	"github.com/automoto/splashed/shared/geometry"
)

var markerTriangle = []geometry.Vector{{X: 8, Y: 0}, {X: -8, Y: 8}, {X: -8, Y: -8}}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
