package courseservice

import (
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

type sampleCourse struct {
	id, name, location     string
	menBase, menSpread     int
	womenBase, womenSpread int
}

var samples = []sampleCourse{
	{"pine-valley", "Pine Valley Golf Club", "Pine Valley, NJ", 350, 200, 300, 150},
	{"augusta-national", "Augusta National Golf Club", "Augusta, GA", 380, 220, 320, 180},
	{"pebble-beach", "Pebble Beach Golf Links", "Pebble Beach, CA", 340, 190, 290, 140},
	{"st-andrews-old", "St. Andrews Old Course", "St. Andrews, Scotland", 360, 200, 310, 160},
}

// BuiltInCourses returns the read-only sample courses: 18 holes, par 72, stroke index
// equal to the hole number.
func BuiltInCourses() []scoringdomain.Course {
	courses := make([]scoringdomain.Course, 0, len(samples))
	for _, s := range samples {
		holes := make([]scoringdomain.Hole, 18)
		for i := range holes {
			holes[i] = scoringdomain.Hole{
				Number:      i + 1,
				Par:         samplePar(i),
				StrokeIndex: i + 1,
				Distance: scoringdomain.Distance{
					Men:   s.menBase + (i*53)%s.menSpread,
					Women: s.womenBase + (i*41)%s.womenSpread,
				},
			}
		}
		courses = append(courses, scoringdomain.Course{
			ID:       s.id,
			Name:     s.name,
			Location: s.location,
			Holes:    holes,
		})
	}
	return courses
}

// samplePar cycles 5, 3, 4 so that every sample course totals 72.
func samplePar(i int) int {
	switch {
	case i%3 == 0:
		return 5
	case i%2 == 0:
		return 4
	default:
		return 3
	}
}

func builtIn(id string) (scoringdomain.Course, bool) {
	for _, c := range BuiltInCourses() {
		if c.ID == id {
			return c, true
		}
	}
	return scoringdomain.Course{}, false
}
