package riot

import "math"

// Hotspot is a common ward spot on Summoner's Rift
type Hotspot struct {
	Name string
	X, Y float64
}

const (
	maxWardRange = 600
	snapBuffer   = 200
)

// WardHotspots are the known ward spots used to place estimated wards
var WardHotspots = []Hotspot{
	{"baron", 4827, 9976},
	{"blue side blue buff", 3032, 7863},
	{"blue side bot jungle entrance", 5434, 3839},
	{"blue side bot tri bush", 10789, 3434},
	{"blue side krug bush", 9342, 2623},
	{"blue side pixel brush", 4653, 8615},
	{"blue side raptors", 6592, 5084},
	{"blue side raptors", 7345, 5228},
	{"blue side red buff bush", 8040, 3955},
	{"blue side red deep bush", 7142, 3608},
	{"blue side top jungle entrance bush", 2308, 7284},
	{"blue side top tower bush", 1961, 9455},
	{"bot lane river", 11918, 4100},
	{"bot lane ward 1", 14031, 2855},
	{"bot lane ward 2", 13394, 2247},
	{"bot lane ward 3", 12787, 1813},
	{"bot side bush 1", 14292, 3173},
	{"bot side bush 3", 12584, 1755},
	{"bot side wolves bush", 10210, 7747},
	{"bottom river bush", 8474, 6473},
	{"dragon pit", 10239, 4736},
	{"mid lane, lane", 7403, 7399},
	{"mid lane, lane ward", 7576, 7341},
	{"red side blue buff", 11831, 7023},
	{"red side bot tri bush", 12526, 4707},
	{"red side bottom jungle entrance", 12468, 7457},
	{"red side gromp bush", 13394, 5605},
	{"red side krugs bush", 5550, 11944},
	{"red side pixel brush", 10239, 6184},
	{"red side raptors", 7055, 9397},
	{"red side red buff", 7055, 10699},
	{"red side top jungle entrance bush", 9429, 10786},
	{"red side top jungle middle bush", 7692, 11133},
	{"red side top tri brush", 4190, 11162},
	{"red side top tri bush", 4335, 11249},
	{"top river bush", 6477, 8152},
	{"top side bush 1", 2337, 12667},
	{"top side bush 2", 1411, 12233},
	{"top side bush 3", 803, 11596},
}

// SnapToHotspot guesses where a player standing at (x, y) put a ward. Wards
// usually go down near max range, so among the hotspots within reach the one
// closest to the range ring wins. With no hotspot in reach the player's own
// position is returned.
func SnapToHotspot(x, y float64) (float64, float64, bool) {
	best := -1
	bestScore := math.Inf(-1)
	for i, h := range WardHotspots {
		dist := math.Hypot(x-h.X, y-h.Y)
		if dist > maxWardRange+snapBuffer {
			continue
		}
		score := 1000 - math.Abs(dist-maxWardRange)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return x, y, false
	}
	return WardHotspots[best].X, WardHotspots[best].Y, true
}
