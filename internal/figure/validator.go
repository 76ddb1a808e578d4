package figure

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

// IssueKind classifies a validation finding. Each kind shares its name with
// the error code Issue.Err reports.
type IssueKind string

const (
	IssueUnknownPart     IssueKind = IssueKind(apperrors.CodeUnknownPart)
	IssueGenderMismatch  IssueKind = IssueKind(apperrors.CodeGenderMismatch)
	IssuePremiumRequired IssueKind = IssueKind(apperrors.CodePremiumRequired)
	IssueColorNotLegal   IssueKind = IssueKind(apperrors.CodeColorNotLegal)
)

// Issue is one problem found on a figure part.
type Issue struct {
	Family catalog.FamilyCode
	PartID catalog.PartID
	// Color is the offending color for color issues and the part color
	// otherwise.
	Color catalog.ColorID
	Kind  IssueKind
}

// Err returns the issue as a typed error.
func (i Issue) Err() error {
	meta := apperrors.Part(string(i.Family), int(i.PartID))
	meta[apperrors.MetaColorID] = strconv.Itoa(int(i.Color))
	return apperrors.WithMetadata(
		apperrors.Code(i.Kind),
		fmt.Sprintf("%s on %s-%d", i.Kind, i.Family, i.PartID),
		meta,
	)
}

// Validate reports every part of f that cat or the premium flag would
// reject. It never fails and never changes f; an empty result means the
// figure is valid.
//
// An unknown part yields a single issue. Otherwise gender, club and each
// color slot are checked independently, so one part can yield several
// issues.
func Validate(f Figure, cat *catalog.Catalog, premium bool) []Issue {
	var issues []Issue
	for _, p := range f.parts {
		entry, ok := cat.Entry(p.Family, p.PartID)
		if !ok {
			issues = append(issues, Issue{Family: p.Family, PartID: p.PartID, Color: p.Color, Kind: IssueUnknownPart})
			continue
		}
		if !entry.Gender.Allows(f.gender) {
			issues = append(issues, Issue{Family: p.Family, PartID: p.PartID, Color: p.Color, Kind: IssueGenderMismatch})
		}
		if entry.Club && !premium {
			issues = append(issues, Issue{Family: p.Family, PartID: p.PartID, Color: p.Color, Kind: IssuePremiumRequired})
		}
		issues = append(issues, colorIssues(cat, entry, p.Color, premium, false)...)
		issues = append(issues, colorIssues(cat, entry, p.SecondaryColor, premium, true)...)
	}
	return issues
}

func colorIssues(cat *catalog.Catalog, entry catalog.Entry, color catalog.ColorID, premium, secondary bool) []Issue {
	issue := func(kind IssueKind) []Issue {
		return []Issue{{Family: entry.Family, PartID: entry.PartID, Color: color, Kind: kind}}
	}
	if color == catalog.NoColor {
		// A colorable entry must carry its primary color.
		if entry.Colorable && !secondary {
			return issue(IssueColorNotLegal)
		}
		return nil
	}
	if !entry.Colorable || (secondary && !entry.Duotone) || !entry.AllowsColor(color) {
		return issue(IssueColorNotLegal)
	}
	if !premium && clubSwatch(cat, entry.Family, color) {
		return issue(IssuePremiumRequired)
	}
	return nil
}

// Repair returns f without the parts named by issues. Families not present
// in issues are kept as they are.
func Repair(f Figure, issues []Issue) Figure {
	for _, issue := range issues {
		f = f.without(issue.Family)
	}
	return f
}
