package models

import (
	"time"

	id "paperflow/pkg/domain"
	dErrors "paperflow/pkg/domain-errors"
)

// Paper is the aggregate root for an examination question paper under
// lifecycle control.
//
// Invariants:
//   - Status is always one of the five lifecycle states
//   - CreatedBy is set at creation and immutable thereafter
//   - History is append-only; entries are never mutated or removed
//   - SubmittedAt and ApprovedAt are set once, on the first matching transition
//   - Version increments on every persisted write (optimistic concurrency)
//
// The stored document projects Status twice - title-cased at the root and
// lowercased under metadata - and both projections are generated from the
// single Status field at the serialization boundary, so they can never
// denote different logical states. See Status.
type Paper struct {
	ID            id.PaperID
	Title         string
	Course        string
	Subject       string
	Questions     []Question
	Status        Status
	CreatedBy     id.UserID
	CreatedByName string
	Review        ReviewRecord
	History       []ApprovalHistoryEntry
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

// ApprovalHistoryEntry is an immutable audit record appended on every
// state-changing operation. The Status literal is always lowercase.
type ApprovalHistoryEntry struct {
	Status     string    `json:"status"`
	ApprovedBy id.UserID `json:"approvedBy"`
	Timestamp  time.Time `json:"timestamp"`
	Comments   string    `json:"comments"`
}

// ReviewRecord holds the reviewer's verdict metadata. It is reset whenever
// a rejected paper is resubmitted.
type ReviewRecord struct {
	ReviewComments string     `json:"reviewComments"`
	ReviewedBy     *id.UserID `json:"reviewedBy"`
	ReviewedOn     *time.Time `json:"reviewedOn"`
}

// NewPaper constructs a Draft paper owned by creator.
func NewPaper(paperID id.PaperID, title, course, subject string, questions []Question, creator id.UserID, creatorName string, now time.Time) (*Paper, error) {
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "paper title cannot be empty")
	}
	if len(title) > 256 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "paper title must be 256 characters or less")
	}
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return &Paper{
		ID:            paperID,
		Title:         title,
		Course:        course,
		Subject:       subject,
		Questions:     questions,
		Status:        StatusDraft,
		CreatedBy:     creator,
		CreatedByName: creatorName,
		History:       []ApprovalHistoryEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	}, nil
}

// CanSubmit checks that the paper may enter review from its current state.
// Use with ApplySubmit for proper separation of concerns.
func (p *Paper) CanSubmit() error {
	if !p.Status.Submittable() {
		return dErrors.Newf(dErrors.CodeInvalidTransition,
			"cannot submit a paper in status %s", p.Status.Title())
	}
	return nil
}

// ApplySubmit moves the paper to Submitted, appends the history entry, and
// clears any prior review verdict. SubmittedAt is set only if unset.
// Call CanSubmit first to validate the transition.
func (p *Paper) ApplySubmit(requester id.UserID, comments string, now time.Time) {
	p.Status = StatusSubmitted
	p.History = append(p.History, ApprovalHistoryEntry{
		Status:     StatusSubmitted.Lower(),
		ApprovedBy: requester,
		Timestamp:  now,
		Comments:   comments,
	})
	if p.SubmittedAt == nil {
		t := now
		p.SubmittedAt = &t
	}
	p.Review = ReviewRecord{}
	p.UpdatedAt = now
}

// CanReview checks that an approve/reject decision applies to the current state.
func (p *Paper) CanReview() error {
	if !p.Status.Reviewable() {
		return dErrors.Newf(dErrors.CodeInvalidTransition,
			"cannot review a paper in status %s", p.Status.Title())
	}
	return nil
}

// ApplyApproval moves the paper to Approved and records the verdict.
// ApprovedAt is set only if unset. Call CanReview first.
func (p *Paper) ApplyApproval(reviewer id.UserID, comments string, now time.Time) {
	p.Status = StatusApproved
	p.History = append(p.History, ApprovalHistoryEntry{
		Status:     StatusApproved.Lower(),
		ApprovedBy: reviewer,
		Timestamp:  now,
		Comments:   comments,
	})
	p.setReview(reviewer, comments, now)
	if p.ApprovedAt == nil {
		t := now
		p.ApprovedAt = &t
	}
	p.UpdatedAt = now
}

// ApplyRejection moves the paper to Rejected and records the verdict.
// Call CanReview first.
func (p *Paper) ApplyRejection(reviewer id.UserID, comments string, now time.Time) {
	p.Status = StatusRejected
	p.History = append(p.History, ApprovalHistoryEntry{
		Status:     StatusRejected.Lower(),
		ApprovedBy: reviewer,
		Timestamp:  now,
		Comments:   comments,
	})
	p.setReview(reviewer, comments, now)
	p.UpdatedAt = now
}

func (p *Paper) setReview(reviewer id.UserID, comments string, now time.Time) {
	t := now
	p.Review = ReviewRecord{
		ReviewComments: comments,
		ReviewedBy:     &reviewer,
		ReviewedOn:     &t,
	}
}

// CanEditContent checks that question content may be replaced in the
// current state. A rejected paper stays Rejected through edits; the verdict
// is cleared only by explicit resubmission.
func (p *Paper) CanEditContent() error {
	if !p.Status.ContentEditable() {
		return dErrors.Newf(dErrors.CodeInvalidTransition,
			"cannot edit a paper in status %s", p.Status.Title())
	}
	return nil
}

// ApplyContentEdit replaces the content fields.
// Call CanEditContent first.
func (p *Paper) ApplyContentEdit(title, course, subject string, questions []Question, now time.Time) {
	if title != "" {
		p.Title = title
	}
	if course != "" {
		p.Course = course
	}
	if subject != "" {
		p.Subject = subject
	}
	if questions != nil {
		p.Questions = questions
	}
	p.UpdatedAt = now
}

// CanDelete checks whether the paper may be removed. Draft and Rejected
// papers are deletable by anyone the guard admits; Approved papers only by
// elevated roles.
func (p *Paper) CanDelete(elevated bool) error {
	if p.Status.ContentEditable() {
		return nil
	}
	if p.Status == StatusApproved && elevated {
		return nil
	}
	return dErrors.Newf(dErrors.CodeInvalidTransition,
		"cannot delete a paper in status %s", p.Status.Title())
}
