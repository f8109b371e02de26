// Package route encodes overview selections as navigable locations and keeps
// the navigation history the TUI moves through.
package route

import (
	"errors"
	"net/url"
	"strings"

	"taskdeck/internal/overview"
)

// Prefix is the location of the daily overview itself.
const Prefix = "/daily-overview"

var ErrNotOverview = errors.New("location is not a daily overview location")

// Params are the parsed location segments.
type Params struct {
	OverviewViewID string
	OverviewItemID string
	SubtaskID      string
}

func (p Params) Selection() overview.Selection {
	return overview.Selection{
		ListID:    p.OverviewViewID,
		ItemID:    p.OverviewItemID,
		SubtaskID: p.SubtaskID,
	}
}

// Format renders sel as a location. A selection without a list or item
// formats as the bare overview location.
func Format(sel overview.Selection) string {
	if sel.ListID == "" || sel.ItemID == "" {
		return Prefix
	}
	loc := Prefix + "/" + url.PathEscape(sel.ListID) + "/" + url.PathEscape(sel.ItemID)
	if sel.SubtaskID != "" {
		loc += "/" + url.PathEscape(sel.SubtaskID)
	}
	return loc
}

// Parse splits a location into its params.
func Parse(loc string) (Params, error) {
	loc = strings.TrimRight(loc, "/")
	if loc == Prefix {
		return Params{}, nil
	}
	if !strings.HasPrefix(loc, Prefix+"/") {
		return Params{}, ErrNotOverview
	}
	parts := strings.Split(strings.TrimPrefix(loc, Prefix+"/"), "/")
	if len(parts) > 3 {
		return Params{}, ErrNotOverview
	}
	decoded := make([]string, 3)
	for i, part := range parts {
		value, err := url.PathUnescape(part)
		if err != nil {
			return Params{}, err
		}
		decoded[i] = value
	}
	return Params{
		OverviewViewID: decoded[0],
		OverviewItemID: decoded[1],
		SubtaskID:      decoded[2],
	}, nil
}
