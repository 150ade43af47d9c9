package models

import (
	"strings"
	"time"

	id "paperflow/pkg/domain"
	dErrors "paperflow/pkg/domain-errors"
)

// Document is the textual form of a Paper used at serialization and storage
// boundaries. It carries the historical dual status representation: the root
// Status field title-cased and Metadata.Status lowercased. Both are generated
// from Paper.Status, so a Document produced by this package always satisfies
// the equality invariant.
type Document struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Status        string                 `json:"status"`
	Metadata      Metadata               `json:"metadata"`
	Questions     []Question             `json:"questions"`
	CreatedBy     string                 `json:"createdBy"`
	CreatedByName string                 `json:"createdByName,omitempty"`
	Review        ReviewRecord           `json:"review"`
	History       []ApprovalHistoryEntry `json:"approvalHistory"`
	SubmittedAt   *time.Time             `json:"submittedAt,omitempty"`
	ApprovedAt    *time.Time             `json:"approvedAt,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	Version       int64                  `json:"version"`
}

// Metadata is the nested document section holding the lowercase status
// projection alongside catalog references.
type Metadata struct {
	Status  string `json:"status"`
	Course  string `json:"course,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// Document projects the paper into its textual form, generating both status
// projections from the single canonical value.
func (p *Paper) Document() Document {
	createdBy := ""
	if !p.CreatedBy.IsNil() {
		createdBy = p.CreatedBy.String()
	}
	history := p.History
	if history == nil {
		history = []ApprovalHistoryEntry{}
	}
	return Document{
		ID:     p.ID.String(),
		Title:  p.Title,
		Status: p.Status.Title(),
		Metadata: Metadata{
			Status:  p.Status.Lower(),
			Course:  p.Course,
			Subject: p.Subject,
		},
		Questions:     p.Questions,
		CreatedBy:     createdBy,
		CreatedByName: p.CreatedByName,
		Review:        p.Review,
		History:       history,
		SubmittedAt:   p.SubmittedAt,
		ApprovedAt:    p.ApprovedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// FromDocument parses a stored document back into a Paper. Status values are
// compared case-insensitively; a document whose two status fields denote
// different logical states is corrupt and is surfaced, never repaired here.
func FromDocument(d Document) (*Paper, error) {
	status, err := ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}
	if d.Metadata.Status != "" && !StatusEqual(d.Status, d.Metadata.Status) {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"status fields disagree: root %q vs metadata %q", d.Status, d.Metadata.Status)
	}

	paperID, err := id.ParsePaperID(d.ID)
	if err != nil {
		return nil, err
	}

	var createdBy id.UserID
	if d.CreatedBy != "" {
		// The placeholder identity owns papers under the nil UUID; only
		// malformed values are rejected.
		parsed, err := id.ParseUserID(d.CreatedBy)
		if err == nil {
			createdBy = parsed
		}
	}

	return &Paper{
		ID:            paperID,
		Title:         d.Title,
		Course:        d.Metadata.Course,
		Subject:       d.Metadata.Subject,
		Questions:     d.Questions,
		Status:        status,
		CreatedBy:     createdBy,
		CreatedByName: d.CreatedByName,
		Review:        d.Review,
		History:       d.History,
		SubmittedAt:   d.SubmittedAt,
		ApprovedAt:    d.ApprovedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Version:       d.Version,
	}, nil
}

// Normalize fixes the casing of the two status projections without changing
// which logical state either denotes: the root field becomes first letter
// uppercase with the remainder lowercased, the metadata field fully
// lowercased, of whatever value is present. It is idempotent and is applied
// by store write paths as a final safety net; documents built via
// Paper.Document are already normalized.
func Normalize(d Document) Document {
	d.Status = titleCase(d.Status)
	d.Metadata.Status = strings.ToLower(d.Metadata.Status)
	return d
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
