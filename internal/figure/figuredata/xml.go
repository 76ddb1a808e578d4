package figuredata

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
)

type xmlDocument struct {
	XMLName  xml.Name     `xml:"figuredata"`
	Palettes []xmlPalette `xml:"colors>palette"`
	SetTypes []xmlSetType `xml:"sets>settype"`
}

type xmlPalette struct {
	ID     int        `xml:"id,attr"`
	Colors []xmlColor `xml:"color"`
}

type xmlColor struct {
	ID         int    `xml:"id,attr"`
	Club       string `xml:"club,attr"`
	Selectable string `xml:"selectable,attr"`
	Value      string `xml:",chardata"`
}

type xmlSetType struct {
	Type      string   `xml:"type,attr"`
	PaletteID int      `xml:"paletteid,attr"`
	Sets      []xmlSet `xml:"set"`
}

type xmlSet struct {
	ID        int       `xml:"id,attr"`
	Gender    string    `xml:"gender,attr"`
	Club      string    `xml:"club,attr"`
	Colorable string    `xml:"colorable,attr"`
	Parts     []xmlPart `xml:"part"`
}

type xmlPart struct {
	ColorIndex int `xml:"colorindex,attr"`
}

// DecodeXML reads an official figuredata document.
//
// A colorable set may use every selectable color of its family palette; a set
// whose parts reference a second color index is duotone. When a set id is
// repeated within a set type the first declaration wins.
func DecodeXML(r io.Reader, opts ...Option) (catalog.Input, error) {
	data, err := readAll(r)
	if err != nil {
		return catalog.Input{}, err
	}
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return catalog.Input{}, malformed("decode xml", err)
	}
	o := newOptions(opts)

	var in catalog.Input
	selectable := make(map[int][]int, len(doc.Palettes))
	for _, p := range doc.Palettes {
		palette := catalog.PaletteInput{ID: p.ID, Swatches: make([]catalog.SwatchInput, 0, len(p.Colors))}
		var all, picked []int
		for _, c := range p.Colors {
			pickable := c.Selectable == "" || truthy(c.Selectable)
			palette.Swatches = append(palette.Swatches, catalog.SwatchInput{
				ID:         c.ID,
				Value:      strings.TrimSpace(c.Value),
				Club:       truthy(c.Club),
				Selectable: pickable,
			})
			all = append(all, c.ID)
			if pickable {
				picked = append(picked, c.ID)
			}
		}
		if len(picked) == 0 {
			picked = all
		}
		selectable[p.ID] = picked
		in.Palettes = append(in.Palettes, palette)
	}

	setTypes := make(map[string]xmlSetType, len(doc.SetTypes))
	var documentOrder []string
	for _, st := range doc.SetTypes {
		code := strings.TrimSpace(st.Type)
		if _, dup := setTypes[code]; dup {
			return catalog.Input{}, malformed(fmt.Sprintf("set type %s is declared twice", code), nil)
		}
		setTypes[code] = st
		documentOrder = append(documentOrder, code)
	}

	for _, code := range o.order(documentOrder) {
		st := setTypes[code]
		in.Families = append(in.Families, catalog.FamilyInput{Code: code, PaletteID: st.PaletteID})

		seen := make(map[int]bool, len(st.Sets))
		for _, set := range st.Sets {
			if seen[set.ID] {
				continue
			}
			seen[set.ID] = true

			entry := catalog.EntryInput{
				Family:    code,
				PartID:    set.ID,
				Gender:    set.Gender,
				Club:      truthy(set.Club),
				Colorable: truthy(set.Colorable),
			}
			if entry.Gender == "" {
				entry.Gender = string(catalog.GenderUnisex)
			}
			if entry.Colorable {
				entry.Colors = append([]int(nil), selectable[st.PaletteID]...)
				entry.Colorable = len(entry.Colors) > 0
				entry.Duotone = entry.Colorable && duotone(set.Parts)
			}
			in.Entries = append(in.Entries, entry)
		}
	}
	return in, nil
}

func duotone(parts []xmlPart) bool {
	for _, p := range parts {
		if p.ColorIndex > 1 {
			return true
		}
	}
	return false
}
