package history

import (
	"fmt"
	"strconv"
	"time"
)

// Visit is the last known state of a visited genre page.
type Visit struct {
	GenreID   int       `json:"genre_id"`
	Name      string    `json:"name"`
	Page      int       `json:"page"`
	Sort      string    `json:"sort"`
	Display   string    `json:"display"`
	Compact   bool      `json:"compact"`
	VisitedAt time.Time `json:"visited_at"`
}

func (v *Visit) encode() string {
	return strconv.Itoa(v.GenreID)
}

func (v *Visit) String() string {
	return fmt.Sprintf("%s (#%d) : page %d, %s", v.Name, v.GenreID, v.Page, v.Sort)
}
