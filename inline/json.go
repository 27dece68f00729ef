package inline

import (
	"encoding/json"
	"io"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/listing"
)

// Genre describes the listed genre.
type Genre struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	TotalPages int    `json:"total_pages"`
}

// GenreOutput is the JSON document printed by `inline genre`.
type GenreOutput struct {
	Genre   Genre        `json:"genre"`
	Page    int          `json:"page"`
	Sort    string       `json:"sort"`
	Display string       `json:"display"`
	Search  string       `json:"search,omitempty"`
	Result  []*api.Anime `json:"result"`
}

// ProfileOutput is the JSON document printed by `inline profile`.
type ProfileOutput struct {
	Username string `json:"username"`
	Gender   string `json:"gender"`
	Birthday string `json:"birthday" jsonschema:"description=YYYY-MM-DD"`
}

func newGenreOutput(state *listing.Listing) *GenreOutput {
	visible := state.Visible()
	result := make([]*api.Anime, len(visible))
	for i := range visible {
		result[i] = &visible[i]
	}

	return &GenreOutput{
		Genre: Genre{
			ID:         state.GenreID,
			Name:       state.Name,
			Count:      state.Count,
			TotalPages: state.TotalPages(),
		},
		Page:    state.Page,
		Sort:    state.Sort.String(),
		Display: state.Display.String(),
		Search:  state.Search,
		Result:  result,
	}
}

func writeJson(out io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = out.Write(append(data, '\n'))
	return err
}
