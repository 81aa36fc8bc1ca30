package airtable

import (
	"sort"
	"strings"
	"sync"

	"card-sync/core/reconcile"
	"card-sync/core/utils"
)

// Field names of the destination table.
const (
	FieldID             = "id"
	FieldColumn         = "column"
	FieldNote           = "note"
	FieldTitle          = "title"
	FieldBody           = "body"
	FieldState          = "state"
	FieldIssueNumber    = "issue_number"
	FieldDeadline       = "deadline"
	FieldAssignees      = "assignees"
	FieldCardCreatedAt  = "card_created_at"
	FieldIssueCreatedAt = "issue_created_at"
	FieldCardURL        = "card_url"
	FieldIssueURL       = "issue_url"
)

// allFields lists every field a card maps to.
var allFields = []string{
	FieldID, FieldColumn, FieldNote, FieldTitle, FieldBody, FieldState, FieldIssueNumber,
	FieldDeadline, FieldAssignees, FieldCardCreatedAt, FieldIssueCreatedAt, FieldCardURL, FieldIssueURL,
}

// identityFields are always written, since rows are matched on them.
var identityFields = map[string]bool{FieldID: true, FieldCardURL: true}

// encodeFields maps a card to a full row. Every field is written so an update
// overwrites stale values; absent values are sent as null.
func encodeFields(card reconcile.Card) map[string]any {
	fields := map[string]any{
		FieldID:             card.ID,
		FieldColumn:         card.Column,
		FieldNote:           nullable(card.Note),
		FieldTitle:          nullable(card.Title),
		FieldBody:           nullable(card.Body),
		FieldState:          nullable(card.State),
		FieldIssueNumber:    nil,
		FieldDeadline:       nil,
		FieldAssignees:      nil,
		FieldCardCreatedAt:  nullable(card.CardCreatedAt),
		FieldIssueCreatedAt: nullable(card.IssueCreatedAt),
		FieldCardURL:        nullable(card.CardURL),
		FieldIssueURL:       nullable(card.IssueURL),
	}
	if card.IssueNumber != 0 {
		fields[FieldIssueNumber] = card.IssueNumber
	}
	if card.Deadline != nil {
		fields[FieldDeadline] = card.Deadline.String()
	}
	if len(card.Assignees) > 0 {
		fields[FieldAssignees] = card.Assignees
	}
	return fields
}

// decodeFields maps a row back to a card. The API omits empty fields, so
// every field is optional.
func decodeFields(fields map[string]any) reconcile.Card {
	card := reconcile.Card{
		ID:             utils.ToInt64(fields[FieldID]),
		Column:         utils.ToString(fields[FieldColumn]),
		Note:           utils.ToString(fields[FieldNote]),
		Title:          utils.ToString(fields[FieldTitle]),
		Body:           utils.ToString(fields[FieldBody]),
		State:          utils.ToString(fields[FieldState]),
		IssueNumber:    utils.ToInt(fields[FieldIssueNumber]),
		Assignees:      utils.ToStringSlice(fields[FieldAssignees]),
		CardCreatedAt:  utils.ToString(fields[FieldCardCreatedAt]),
		IssueCreatedAt: utils.ToString(fields[FieldIssueCreatedAt]),
		CardURL:        utils.ToString(fields[FieldCardURL]),
		IssueURL:       utils.ToString(fields[FieldIssueURL]),
	}

	if raw := utils.ToString(fields[FieldDeadline]); raw != "" {
		// An unparseable cell reads as no deadline, so the next update rewrites it
		if d, err := reconcile.ParseDate(raw); err == nil {
			card.Deadline = &d
		}
	}
	return card
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// fieldSet tracks which card fields the destination keeps. A field is kept
// when it is configured (or no list is configured) and the table has not
// dropped a value written to it.
type fieldSet struct {
	mu      sync.Mutex
	allowed map[string]bool
	dropped map[string]bool
	// pending holds the non-empty fields last written to each record until a
	// listing confirms them.
	pending map[string][]string
}

// newFieldSet parses a comma-separated field list. An empty list keeps every field.
func newFieldSet(configured string) *fieldSet {
	s := &fieldSet{dropped: make(map[string]bool), pending: make(map[string][]string)}
	for _, name := range strings.Split(configured, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if s.allowed == nil {
			s.allowed = make(map[string]bool)
		}
		s.allowed[name] = true
	}
	if s.allowed != nil {
		for name := range identityFields {
			s.allowed[name] = true
		}
	}
	return s
}

func (s *fieldSet) keeps(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keepsLocked(name)
}

func (s *fieldSet) keepsLocked(name string) bool {
	if identityFields[name] {
		return true
	}
	if s.allowed != nil && !s.allowed[name] {
		return false
	}
	return !s.dropped[name]
}

// filter removes the fields the destination does not keep.
func (s *fieldSet) filter(fields map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(fields))
	for name, value := range fields {
		if s.keepsLocked(name) {
			out[name] = value
		}
	}
	return out
}

// observeWrite compares the fields sent for a record with the ones the table
// echoed back. It returns the fields found dropped by this write.
func (s *fieldSet) observeWrite(recordID string, sent, stored map[string]any) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var written []string
	for name, value := range sent {
		if value != nil {
			written = append(written, name)
		}
	}
	if recordID != "" {
		s.pending[recordID] = written
	}
	if stored == nil {
		return nil
	}
	return s.dropMissingLocked(written, stored)
}

// observeRow checks a listed row against the fields last written to it.
func (s *fieldSet) observeRow(row Record) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	written, ok := s.pending[row.ID]
	if !ok {
		return nil
	}
	delete(s.pending, row.ID)
	return s.dropMissingLocked(written, row.Fields)
}

func (s *fieldSet) dropMissingLocked(written []string, stored map[string]any) []string {
	var newly []string
	for _, name := range written {
		if identityFields[name] || s.dropped[name] {
			continue
		}
		if _, ok := stored[name]; !ok {
			s.dropped[name] = true
			newly = append(newly, name)
		}
	}
	sort.Strings(newly)
	return newly
}

// project clears the card fields the destination does not keep.
func (s *fieldSet) project(card reconcile.Card) reconcile.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range allFields {
		if !s.keepsLocked(name) {
			clearField(&card, name)
		}
	}
	return card
}

func clearField(card *reconcile.Card, name string) {
	switch name {
	case FieldColumn:
		card.Column = ""
	case FieldNote:
		card.Note = ""
	case FieldTitle:
		card.Title = ""
	case FieldBody:
		card.Body = ""
	case FieldState:
		card.State = ""
	case FieldIssueNumber:
		card.IssueNumber = 0
	case FieldDeadline:
		card.Deadline = nil
	case FieldAssignees:
		card.Assignees = nil
	case FieldCardCreatedAt:
		card.CardCreatedAt = ""
	case FieldIssueCreatedAt:
		card.IssueCreatedAt = ""
	case FieldIssueURL:
		card.IssueURL = ""
	}
}
