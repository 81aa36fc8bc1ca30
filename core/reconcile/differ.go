package reconcile

import (
	"sort"

	"github.com/google/go-cmp/cmp"
)

// ComputeOperations partitions cards into create and update queues against the
// destination rows. Rows are indexed by identity once; a card with no row is
// created, a card whose normalized fields differ from its row is updated, and
// an equal card is left alone. Rows without a matching card are never touched.
// Queues are sorted by key so the result does not depend on input order.
func ComputeOperations(cards []Card, records []DestinationRecord, identity Identity) *Plan {
	if identity == nil {
		identity = ByCardID
	}

	index := make(map[string]DestinationRecord, len(records))
	for _, record := range records {
		index[identity(record.Card)] = record
	}

	plan := &Plan{
		Create: []Action{},
		Update: []Action{},
	}

	for _, card := range cards {
		key := identity(card)
		record, exists := index[key]
		if !exists {
			plan.Create = append(plan.Create, Action{
				Type: ActionCreate,
				Key:  key,
				Card: card,
			})
			continue
		}

		if Equal(card, record.Card) {
			plan.Summary.Unchanged++
			continue
		}

		plan.Update = append(plan.Update, Action{
			Type:     ActionUpdate,
			Key:      key,
			RecordID: record.RecordID,
			Card:     card,
		})
	}

	sortActions(plan.Create)
	sortActions(plan.Update)

	plan.Summary.TotalCards = len(cards)
	plan.Summary.TotalRecords = len(records)
	plan.Summary.Creates = len(plan.Create)
	plan.Summary.Updates = len(plan.Update)

	return plan
}

// Equal reports whether two cards hold the same logical fields after normalization.
func Equal(a, b Card) bool {
	return cmp.Equal(a.Normalize(), b.Normalize())
}

// Diff returns a human readable difference of two normalized cards, empty when equal.
func Diff(a, b Card) string {
	return cmp.Diff(a.Normalize(), b.Normalize())
}

func sortActions(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		if len(actions[i].Key) != len(actions[j].Key) {
			return len(actions[i].Key) < len(actions[j].Key)
		}
		return actions[i].Key < actions[j].Key
	})
}
