package osmextract

import (
	"github.com/boykefeng/sloperoute/pkg"
	"github.com/paulmach/osm"
)

// AcceptWay reports whether an osm way belongs in the drivable street
// network. Footways, areas and unknown highway classes are skipped.
func AcceptWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	return pkg.GetHighwayType(highway) != pkg.UNKNOWN
}

func isOneway(way *osm.Way) (oneway, reversed bool) {
	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return true, true
	}
	if way.Tags.Find("junction") == "roundabout" {
		return true, false
	}
	return false, false
}
