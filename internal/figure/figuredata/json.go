package figuredata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
)

// flexString accepts JSON strings, numbers, booleans and null. The edge
// function emits ids as strings and flags as either strings or booleans.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

func (f flexString) int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(f)))
}

type jsonPayload struct {
	Error         string                  `json:"error"`
	FigureParts   json.RawMessage         `json:"figureParts"`
	ColorPalettes map[string][]jsonSwatch `json:"colorPalettes"`
}

type jsonPart struct {
	ID        flexString   `json:"id"`
	Gender    string       `json:"gender"`
	Club      flexString   `json:"club"`
	Colorable flexString   `json:"colorable"`
	Colors    []flexString `json:"colors"`
	PaletteID flexString   `json:"paletteId"`
}

type jsonSwatch struct {
	ID         flexString `json:"id"`
	Hex        string     `json:"hex"`
	Club       flexString `json:"club"`
	Selectable *bool      `json:"selectable"`
}

type jsonFamily struct {
	code  string
	parts []jsonPart
}

// DecodeJSON reads the edge-function payload
// {"figureParts": {family: [part...]}, "colorPalettes": {id: [swatch...]}}.
//
// Families are declared in payload key order. A family uses the palette of
// its first part that names one. Colors outside that palette are dropped; a
// colorable part left without colors is treated as not colorable.
func DecodeJSON(r io.Reader, opts ...Option) (catalog.Input, error) {
	data, err := readAll(r)
	if err != nil {
		return catalog.Input{}, err
	}
	var payload jsonPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return catalog.Input{}, malformed("decode json", err)
	}
	if payload.Error != "" {
		return catalog.Input{}, malformed("payload reports error: "+payload.Error, nil)
	}
	families, err := decodeFamilies(payload.FigureParts)
	if err != nil {
		return catalog.Input{}, err
	}
	o := newOptions(opts)

	var in catalog.Input
	members := make(map[int]map[int]bool, len(payload.ColorPalettes))
	paletteKeys := make([]string, 0, len(payload.ColorPalettes))
	for key := range payload.ColorPalettes {
		paletteKeys = append(paletteKeys, key)
	}
	sort.Strings(paletteKeys)
	for _, key := range paletteKeys {
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return catalog.Input{}, malformed(fmt.Sprintf("palette id %q is not numeric", key), err)
		}
		palette := catalog.PaletteInput{ID: id}
		members[id] = map[int]bool{}
		for _, s := range payload.ColorPalettes[key] {
			colorID, err := s.ID.int()
			if err != nil {
				return catalog.Input{}, malformed(fmt.Sprintf("palette %d has non-numeric color %q", id, s.ID), err)
			}
			selectable := s.Selectable == nil || *s.Selectable
			palette.Swatches = append(palette.Swatches, catalog.SwatchInput{
				ID:         colorID,
				Value:      s.Hex,
				Club:       truthy(string(s.Club)),
				Selectable: selectable,
			})
			members[id][colorID] = true
		}
		in.Palettes = append(in.Palettes, palette)
	}

	byCode := make(map[string][]jsonPart, len(families))
	documentOrder := make([]string, 0, len(families))
	for _, f := range families {
		byCode[f.code] = f.parts
		documentOrder = append(documentOrder, f.code)
	}

	needsEmptyPalette := false
	for _, code := range o.order(documentOrder) {
		parts := byCode[code]
		paletteID, ok, err := familyPalette(parts)
		if err != nil {
			return catalog.Input{}, malformed(fmt.Sprintf("family %s: %v", code, err), err)
		}
		if !ok {
			paletteID = emptyPaletteID
			needsEmptyPalette = true
		}
		in.Families = append(in.Families, catalog.FamilyInput{Code: code, PaletteID: paletteID})

		seen := map[int]bool{}
		for _, p := range parts {
			partID, err := p.ID.int()
			if err != nil {
				continue
			}
			if seen[partID] {
				continue
			}
			seen[partID] = true

			entry := catalog.EntryInput{
				Family:    code,
				PartID:    partID,
				Gender:    p.Gender,
				Club:      truthy(string(p.Club)),
				Colorable: truthy(string(p.Colorable)),
			}
			if entry.Gender == "" {
				entry.Gender = string(catalog.GenderUnisex)
			}
			if entry.Colorable {
				for _, raw := range p.Colors {
					colorID, err := raw.int()
					if err == nil && members[paletteID][colorID] {
						entry.Colors = append(entry.Colors, colorID)
					}
				}
				entry.Colorable = len(entry.Colors) > 0
			}
			in.Entries = append(in.Entries, entry)
		}
	}
	if needsEmptyPalette {
		in.Palettes = append(in.Palettes, catalog.PaletteInput{ID: emptyPaletteID})
	}
	return in, nil
}

// emptyPaletteID backs families whose parts name no palette. Published
// palettes are numbered from 1.
const emptyPaletteID = 0

func familyPalette(parts []jsonPart) (int, bool, error) {
	for _, p := range parts {
		if strings.TrimSpace(string(p.PaletteID)) == "" {
			continue
		}
		id, err := p.PaletteID.int()
		if err != nil {
			return 0, false, fmt.Errorf("palette id %q is not numeric", p.PaletteID)
		}
		return id, true, nil
	}
	return 0, false, nil
}

// decodeFamilies walks the figureParts object token by token so the family
// order of the payload survives.
func decodeFamilies(raw json.RawMessage) ([]jsonFamily, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, malformed("payload has no figureParts", nil)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, malformed("decode figureParts", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, malformed("figureParts is not an object", nil)
	}

	var families []jsonFamily
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed("decode figureParts", err)
		}
		code, _ := tok.(string)
		var parts []jsonPart
		if err := dec.Decode(&parts); err != nil {
			return nil, malformed(fmt.Sprintf("decode family %s", code), err)
		}
		families = append(families, jsonFamily{code: code, parts: parts})
	}
	return families, nil
}
