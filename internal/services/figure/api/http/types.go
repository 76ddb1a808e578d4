package httpapi

import (
	"time"

	"github.com/louisbranch/habbohub/internal/figure"
	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
	"github.com/louisbranch/habbohub/internal/services/figure/service"
	"github.com/louisbranch/habbohub/internal/services/figure/storage"
)

type familyJSON struct {
	Code      string `json:"code"`
	PaletteID int    `json:"palette_id"`
	Entries   int    `json:"entries"`
	Mandatory bool   `json:"mandatory"`
}

type entryJSON struct {
	PartID    int    `json:"part_id"`
	Gender    string `json:"gender"`
	Club      bool   `json:"club"`
	Colorable bool   `json:"colorable"`
	Duotone   bool   `json:"duotone,omitempty"`
	Colors    []int  `json:"colors"`
}

type swatchJSON struct {
	ID         int    `json:"id"`
	Hex        string `json:"hex"`
	Club       bool   `json:"club"`
	Selectable bool   `json:"selectable"`
}

type paletteJSON struct {
	ID       int          `json:"id"`
	Swatches []swatchJSON `json:"swatches"`
}

type partJSON struct {
	Family         string `json:"family"`
	PartID         int    `json:"part_id"`
	Color          int    `json:"color,omitempty"`
	SecondaryColor int    `json:"secondary_color,omitempty"`
}

type figureJSON struct {
	Figure string     `json:"figure"`
	Gender string     `json:"gender"`
	Parts  []partJSON `json:"parts"`
}

type issueJSON struct {
	Family  string `json:"family"`
	PartID  int    `json:"part_id"`
	Color   int    `json:"color,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type recordJSON struct {
	OwnerID   string `json:"owner_id"`
	Hotel     string `json:"hotel,omitempty"`
	Figure    string `json:"figure"`
	Gender    string `json:"gender"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type decodeRequest struct {
	Figure string `json:"figure"`
	Gender string `json:"gender"`
}

type validateRequest struct {
	Figure  string `json:"figure"`
	Gender  string `json:"gender"`
	Premium bool   `json:"premium"`
	Repair  bool   `json:"repair"`
}

type validateResponse struct {
	Valid  bool        `json:"valid"`
	Figure figureJSON  `json:"figure"`
	Issues []issueJSON `json:"issues"`
}

type genderRequest struct {
	Gender string `json:"gender"`
}

type randomRequest struct {
	Gender  string `json:"gender"`
	Premium bool   `json:"premium"`
	Seed    *int64 `json:"seed"`
}

type opJSON struct {
	Op             string `json:"op"`
	Family         string `json:"family"`
	PartID         int    `json:"part_id"`
	Color          int    `json:"color"`
	SecondaryColor int    `json:"secondary_color"`
}

type editRequest struct {
	Figure  string   `json:"figure"`
	Gender  string   `json:"gender"`
	Premium bool     `json:"premium"`
	Ops     []opJSON `json:"ops"`
}

type imageRequest struct {
	Figure        string `json:"figure"`
	Gender        string `json:"gender"`
	Direction     *int   `json:"direction"`
	HeadDirection *int   `json:"head_direction"`
	Action        string `json:"action"`
	Gesture       string `json:"gesture"`
	Size          string `json:"size"`
	HeadOnly      bool   `json:"head_only"`
	Canonicalize  bool   `json:"canonicalize"`
}

type saveRequest struct {
	Figure  string `json:"figure"`
	Gender  string `json:"gender"`
	Premium bool   `json:"premium"`
}

type listOwnersResponse struct {
	Figures       []recordJSON `json:"figures"`
	NextPageToken string       `json:"next_page_token,omitempty"`
}

func familyToJSON(f service.FamilySummary) familyJSON {
	return familyJSON{Code: string(f.Code), PaletteID: f.PaletteID, Entries: f.Entries, Mandatory: f.Mandatory}
}

func entryToJSON(e catalog.Entry) entryJSON {
	colors := make([]int, 0, len(e.Colors))
	for _, c := range e.Colors {
		colors = append(colors, int(c))
	}
	return entryJSON{
		PartID:    int(e.PartID),
		Gender:    string(e.Gender),
		Club:      e.Club,
		Colorable: e.Colorable,
		Duotone:   e.Duotone,
		Colors:    colors,
	}
}

func paletteToJSON(p catalog.Palette) paletteJSON {
	out := paletteJSON{ID: p.ID(), Swatches: []swatchJSON{}}
	for _, s := range p.Swatches() {
		out.Swatches = append(out.Swatches, swatchJSON{
			ID:         int(s.ID),
			Hex:        s.Value,
			Club:       s.Club,
			Selectable: s.Selectable,
		})
	}
	return out
}

func figureToJSON(f figure.Figure) figureJSON {
	out := figureJSON{Figure: figure.Encode(f), Gender: string(f.Gender()), Parts: []partJSON{}}
	for _, p := range f.Parts() {
		out.Parts = append(out.Parts, partJSON{
			Family:         string(p.Family),
			PartID:         int(p.PartID),
			Color:          int(p.Color),
			SecondaryColor: int(p.SecondaryColor),
		})
	}
	return out
}

func issuesToJSON(issues []figure.Issue, locale string) []issueJSON {
	out := make([]issueJSON, 0, len(issues))
	for _, issue := range issues {
		message, _ := apperrors.Localize(issue.Err(), locale)
		out = append(out, issueJSON{
			Family:  string(issue.Family),
			PartID:  int(issue.PartID),
			Color:   int(issue.Color),
			Kind:    string(issue.Kind),
			Message: message,
		})
	}
	return out
}

func recordToJSON(r storage.FigureRecord) recordJSON {
	return recordJSON{
		OwnerID:   r.OwnerID,
		Hotel:     r.Hotel,
		Figure:    r.Figure,
		Gender:    r.Gender,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
