package table

import (
	"card-sync/core/reconcile"
)

// CardRow is a card stored as one row of the destination table.
type CardRow struct {
	RecordID       string   `gorm:"column:record_id;primaryKey;size:36"`
	CardID         int64    `gorm:"column:card_id;uniqueIndex"`
	ColumnName     string   `gorm:"column:column_name;size:255"`
	Note           string   `gorm:"column:note;type:text"`
	Title          string   `gorm:"column:title;type:text"`
	Body           string   `gorm:"column:body;type:text"`
	State          string   `gorm:"column:state;size:32"`
	IssueNumber    int      `gorm:"column:issue_number"`
	Deadline       *string  `gorm:"column:deadline;size:10"`
	Assignees      []string `gorm:"column:assignees;type:text;serializer:json"`
	CardCreatedAt  string   `gorm:"column:card_created_at;size:64"`
	IssueCreatedAt string   `gorm:"column:issue_created_at;size:64"`
	CardURL        string   `gorm:"column:card_url;size:512"`
	IssueURL       string   `gorm:"column:issue_url;size:512"`
}

// columns lists the columns a usable table must have.
var columns = []string{
	"record_id", "card_id", "column_name", "note", "title", "body", "state",
	"issue_number", "deadline", "assignees", "card_created_at", "issue_created_at",
	"card_url", "issue_url",
}

func toRow(recordID string, card reconcile.Card) CardRow {
	row := CardRow{
		RecordID:       recordID,
		CardID:         card.ID,
		ColumnName:     card.Column,
		Note:           card.Note,
		Title:          card.Title,
		Body:           card.Body,
		State:          card.State,
		IssueNumber:    card.IssueNumber,
		Assignees:      card.Assignees,
		CardCreatedAt:  card.CardCreatedAt,
		IssueCreatedAt: card.IssueCreatedAt,
		CardURL:        card.CardURL,
		IssueURL:       card.IssueURL,
	}
	if card.Deadline != nil {
		d := card.Deadline.String()
		row.Deadline = &d
	}
	return row
}

func (r CardRow) toRecord() reconcile.DestinationRecord {
	card := reconcile.Card{
		ID:             r.CardID,
		Column:         r.ColumnName,
		Note:           r.Note,
		Title:          r.Title,
		Body:           r.Body,
		State:          r.State,
		IssueNumber:    r.IssueNumber,
		Assignees:      r.Assignees,
		CardCreatedAt:  r.CardCreatedAt,
		IssueCreatedAt: r.IssueCreatedAt,
		CardURL:        r.CardURL,
		IssueURL:       r.IssueURL,
	}
	if r.Deadline != nil && *r.Deadline != "" {
		if d, err := reconcile.ParseDate(*r.Deadline); err == nil {
			card.Deadline = &d
		}
	}
	return reconcile.DestinationRecord{RecordID: r.RecordID, Card: card}
}
