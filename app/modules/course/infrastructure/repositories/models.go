package coursedb

import (
	"time"

	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// Course is the stored form of a custom course.
type Course struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Location  string               `json:"location"`
	Holes     []scoringdomain.Hole `json:"holes"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ToDomain converts the stored course to the scoring type.
func (c *Course) ToDomain() scoringdomain.Course {
	return scoringdomain.Course{
		ID:       c.ID,
		Name:     c.Name,
		Location: c.Location,
		Holes:    append([]scoringdomain.Hole(nil), c.Holes...),
	}
}
