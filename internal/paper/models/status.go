package models

import (
	"strings"

	dErrors "paperflow/pkg/domain-errors"
)

// Status is the canonical in-memory lifecycle state of a paper.
//
// Historically the stored document carried two textual copies of this value
// with different casing conventions: the root field title-cased ("Draft")
// and the nested metadata field lowercased ("draft"). Keeping a single enum
// here and generating both projections only at the serialization boundary
// removes the reconciliation bug class entirely; Title and Lower are the two
// projections.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPublished Status = "published"
)

// ParseStatus resolves a stored or inbound textual value case-insensitively.
// Unknown values are surfaced as errors, never silently corrected.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusSubmitted:
		return StatusSubmitted, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusPublished:
		return StatusPublished, nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvariantViolation, "unknown paper status %q", s)
	}
}

// Title returns the root-field projection: first letter uppercase,
// remainder lowercase ("Draft").
func (s Status) Title() string {
	v := string(s)
	if v == "" {
		return ""
	}
	return strings.ToUpper(v[:1]) + strings.ToLower(v[1:])
}

// Lower returns the metadata-field projection: fully lowercase ("draft").
func (s Status) Lower() string {
	return strings.ToLower(string(s))
}

// Equal compares two textual status values case-insensitively.
func StatusEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ContentEditable reports whether question content may still change.
// Approved and Published papers are terminal for editing; Rejected is not.
func (s Status) ContentEditable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Submittable reports whether the paper may enter review.
func (s Status) Submittable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Reviewable reports whether approve/reject decisions apply.
func (s Status) Reviewable() bool {
	return s == StatusSubmitted
}
