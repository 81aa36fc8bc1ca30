package airtable

import (
	"testing"

	"card-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestEncodeFields_WritesEveryField(t *testing.T) {
	fields := encodeFields(reconcile.Card{ID: 1, Column: "To do"})

	assert.Len(t, fields, 13)
	assert.Equal(t, int64(1), fields[FieldID])
	assert.Nil(t, fields[FieldDeadline])
	assert.Nil(t, fields[FieldAssignees])
	assert.Nil(t, fields[FieldIssueNumber])
	assert.Contains(t, fields, FieldNote)
}

func TestEncodeFields_Deadline(t *testing.T) {
	fields := encodeFields(sampleCard())
	assert.Equal(t, "2020-03-04", fields[FieldDeadline])
	assert.Equal(t, []string{"octocat", "hubot"}, fields[FieldAssignees])
}

func TestDecodeFields_Lenient(t *testing.T) {
	card := decodeFields(map[string]any{
		FieldID:        "17",
		FieldDeadline:  "not a date",
		FieldAssignees: "solo",
	})

	assert.Equal(t, int64(17), card.ID)
	assert.Nil(t, card.Deadline)
	assert.Equal(t, []string{"solo"}, card.Assignees)
}

func TestDecodeFields_Empty(t *testing.T) {
	card := decodeFields(map[string]any{})
	assert.True(t, reconcile.Equal(reconcile.Card{}, card))
}

func TestFieldSet_Configured(t *testing.T) {
	s := newFieldSet(" column , note,")

	assert.True(t, s.keeps(FieldColumn))
	assert.True(t, s.keeps(FieldNote))
	assert.True(t, s.keeps(FieldID))
	assert.True(t, s.keeps(FieldCardURL))
	assert.False(t, s.keeps(FieldTitle))

	card := s.project(sampleCard())
	assert.Equal(t, "In progress", card.Column)
	assert.Equal(t, sampleCard().CardURL, card.CardURL)
	assert.Empty(t, card.Title)
	assert.Nil(t, card.Deadline)
	assert.Nil(t, card.Assignees)
	assert.Zero(t, card.IssueNumber)
}

func TestFieldSet_EmptyKeepsEverything(t *testing.T) {
	s := newFieldSet("")
	for _, name := range allFields {
		assert.True(t, s.keeps(name), name)
	}
	assert.True(t, reconcile.Equal(sampleCard(), s.project(sampleCard())))
}

func TestFieldSet_LearnsDroppedFields(t *testing.T) {
	s := newFieldSet("")
	sent := map[string]any{FieldID: int64(2), FieldColumn: "To do", FieldNote: "remember", FieldTitle: nil}

	dropped := s.observeWrite("rec1", sent, map[string]any{FieldID: float64(2), FieldColumn: "To do"})
	assert.Equal(t, []string{FieldNote}, dropped)
	assert.False(t, s.keeps(FieldNote))
	assert.True(t, s.keeps(FieldTitle), "null values say nothing about the column")

	// A listing confirms the same write without reporting the field twice.
	assert.Empty(t, s.observeRow(Record{ID: "rec1", Fields: map[string]any{FieldID: float64(2), FieldColumn: "To do"}}))
}

func TestFieldSet_LearnsFromListing(t *testing.T) {
	s := newFieldSet("")
	sent := map[string]any{FieldID: int64(2), FieldCardURL: "u", FieldState: "open"}

	assert.Empty(t, s.observeWrite("rec1", sent, nil))
	assert.True(t, s.keeps(FieldState))

	assert.Equal(t, []string{FieldState}, s.observeRow(Record{ID: "rec1", Fields: map[string]any{FieldID: float64(2)}}))
	assert.False(t, s.keeps(FieldState))
	assert.True(t, s.keeps(FieldCardURL), "identity fields are never dropped")

	// Rows without a pending write are left alone.
	assert.Empty(t, s.observeRow(Record{ID: "rec9", Fields: map[string]any{}}))
}
