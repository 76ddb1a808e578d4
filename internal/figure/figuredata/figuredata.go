// Package figuredata turns a hotel's published clothing catalog into a
// catalog.Input. Two encodings are understood: the official figuredata XML
// document and the JSON payload served by the site's figuredata edge
// function.
//
// Decoding is tolerant where the published documents are known to be sloppy
// (duplicate set ids, colors outside the family palette) and strict
// everywhere else; catalog.New performs the final consistency checks.
package figuredata

import (
	"bytes"
	"io"
	"strings"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

// WearableFamilies are the families an avatar editor offers, in the order
// figure strings list them.
var WearableFamilies = []string{"hd", "hr", "ch", "cc", "lg", "sh", "ha", "he", "ea", "fa", "ca", "wa", "cp"}

// Option customizes decoding.
type Option func(*options)

type options struct {
	families []string
}

// WithFamilies keeps only the listed families and declares them in the given
// order. Families missing from the document are ignored.
func WithFamilies(families ...string) Option {
	return func(o *options) {
		o.families = nil
		for _, family := range families {
			if family = strings.TrimSpace(family); family != "" {
				o.families = append(o.families, family)
			}
		}
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// order returns the families to declare given their document order.
func (o options) order(document []string) []string {
	if len(o.families) == 0 {
		return document
	}
	present := make(map[string]bool, len(document))
	for _, family := range document {
		present[family] = true
	}
	out := make([]string, 0, len(o.families))
	for _, family := range o.families {
		if present[family] {
			out = append(out, family)
		}
	}
	return out
}

// Parse detects the encoding of data and builds the catalog it describes.
func Parse(data []byte, opts ...Option) (*catalog.Catalog, error) {
	var (
		in  catalog.Input
		err error
	)
	switch sniff(data) {
	case '<':
		in, err = DecodeXML(bytes.NewReader(data), opts...)
	case '{':
		in, err = DecodeJSON(bytes.NewReader(data), opts...)
	default:
		return nil, malformed("document is neither XML nor JSON", nil)
	}
	if err != nil {
		return nil, err
	}
	return catalog.New(in)
}

func sniff(data []byte) byte {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, malformed("read document", err)
	}
	return data, nil
}

func malformed(reason string, cause error) error {
	return &apperrors.Error{
		Code:     apperrors.CodeMalformedCatalog,
		Message:  "figuredata: " + reason,
		Metadata: map[string]string{apperrors.MetaReason: reason},
		Cause:    cause,
	}
}

// truthy interprets the flag spellings found in figuredata documents.
func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "null":
		return false
	}
	return true
}
