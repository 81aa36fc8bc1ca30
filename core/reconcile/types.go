package reconcile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Card is the normalized unit pulled from the source board.
// It merges a board card with its linked issue when one exists.
type Card struct {
	// ID is the stable external card identifier.
	ID int64 `json:"id"`

	// Column is the label of the board column holding the card.
	Column string `json:"column"`

	// Note is the free text of a note-only card.
	Note string `json:"note,omitempty"`

	// Title is the linked issue title.
	Title string `json:"title,omitempty"`

	// Body is the linked issue body.
	Body string `json:"body,omitempty"`

	// State is the linked issue state (open, closed).
	State string `json:"state,omitempty"`

	// IssueNumber is the linked issue number, zero for note cards.
	IssueNumber int `json:"issue_number,omitempty"`

	// Deadline is derived from the deadline marker; nil when absent.
	Deadline *Date `json:"deadline"`

	// Assignees holds the login names assigned to the linked issue.
	Assignees []string `json:"assignees,omitempty"`

	// CardCreatedAt is the card creation timestamp as reported by the source.
	CardCreatedAt string `json:"card_created_at,omitempty"`

	// IssueCreatedAt is the issue creation timestamp as reported by the source.
	IssueCreatedAt string `json:"issue_created_at,omitempty"`

	// CardURL is the API URL of the card.
	CardURL string `json:"card_url,omitempty"`

	// IssueURL is the browser URL of the linked issue.
	IssueURL string `json:"issue_url,omitempty"`
}

// Key returns the card identity as a string.
func (c Card) Key() string {
	return strconv.FormatInt(c.ID, 10)
}

// Normalize returns a copy of the card in its canonical comparison form.
// Empty and nil assignee lists collapse to nil and assignees are sorted,
// since they form a set.
func (c Card) Normalize() Card {
	if len(c.Assignees) == 0 {
		c.Assignees = nil
		return c
	}
	assignees := make([]string, len(c.Assignees))
	copy(assignees, c.Assignees)
	sort.Strings(assignees)
	c.Assignees = assignees
	return c
}

// DestinationRecord is a row of the destination store decoded into card fields.
type DestinationRecord struct {
	// RecordID is the destination-assigned identifier used to address updates.
	RecordID string `json:"record_id"`

	// Card holds the logical fields stored in the row.
	Card Card `json:"card"`
}

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// NewDate returns the date or an error when the parts do not name a real calendar day.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("invalid calendar date %04d-%02d-%02d", year, int(month), day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Identity extracts the matching key of a card.
type Identity func(Card) string

// ByCardID matches cards and records on the card id.
func ByCardID(c Card) string {
	return c.Key()
}

// IdentityByField returns the identity function for a configured field name.
func IdentityByField(field string) (Identity, error) {
	switch field {
	case "", "id":
		return ByCardID, nil
	case "card_url":
		return func(c Card) string { return c.CardURL }, nil
	default:
		return nil, fmt.Errorf("unsupported identity field %q", field)
	}
}

// ActionType represents the type of destination mutation.
type ActionType string

const (
	// ActionCreate inserts a new destination row.
	ActionCreate ActionType = "create"
	// ActionUpdate overwrites an existing destination row.
	ActionUpdate ActionType = "update"
)

// Action represents a planned destination call.
type Action struct {
	// Type specifies the call to perform.
	Type ActionType `json:"type"`

	// Key is the card identity.
	Key string `json:"key"`

	// RecordID addresses the destination row. Only set for ActionUpdate.
	RecordID string `json:"record_id,omitempty"`

	// Card is the source state to write.
	Card Card `json:"card"`
}

// Plan holds the operation queues produced for one pass.
type Plan struct {
	// Create is the queue of rows to insert.
	Create []Action `json:"create"`

	// Update is the queue of rows to overwrite.
	Update []Action `json:"update"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// Empty reports whether the plan has nothing to apply.
func (p *Plan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalCards is the number of source cards considered.
	TotalCards int `json:"total_cards"`

	// TotalRecords is the number of destination rows listed.
	TotalRecords int `json:"total_records"`

	// Creates counts planned inserts.
	Creates int `json:"creates"`

	// Updates counts planned overwrites.
	Updates int `json:"updates"`

	// Unchanged counts cards equal to their destination row.
	Unchanged int `json:"unchanged"`
}

// ApplyResult reports the outcome of applying a plan.
type ApplyResult struct {
	// Created counts successful inserts.
	Created int `json:"created"`

	// Updated counts successful overwrites.
	Updated int `json:"updated"`

	// Failures holds the rejected writes, in call order.
	Failures []*SinkWriteError `json:"-"`
}

// Failed returns the number of rejected writes.
func (r ApplyResult) Failed() int {
	return len(r.Failures)
}

// MarshalJSON reports failures as a count and their messages.
func (r ApplyResult) MarshalJSON() ([]byte, error) {
	errs := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.Error())
	}
	return json.Marshal(struct {
		Created int      `json:"created"`
		Updated int      `json:"updated"`
		Failed  int      `json:"failed"`
		Errors  []string `json:"errors"`
	}{r.Created, r.Updated, len(r.Failures), errs})
}

// ReconcileOptions controls pass behavior.
type ReconcileOptions struct {
	// DryRun computes the plan without calling the destination writers.
	DryRun bool
}
