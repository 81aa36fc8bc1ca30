package reconcile

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOperations_Examples(t *testing.T) {
	tests := []struct {
		name         string
		cards        []Card
		records      []DestinationRecord
		expectCreate []Action
		expectUpdate []Action
	}{
		{
			name:  "Missing row is created",
			cards: []Card{{ID: 1, Title: "A"}},
			expectCreate: []Action{
				{Type: ActionCreate, Key: "1", Card: Card{ID: 1, Title: "A"}},
			},
			expectUpdate: []Action{},
		},
		{
			name:         "Equal row is unchanged",
			cards:        []Card{{ID: 1, Title: "A"}},
			records:      []DestinationRecord{{RecordID: "recX", Card: Card{ID: 1, Title: "A"}}},
			expectCreate: []Action{},
			expectUpdate: []Action{},
		},
		{
			name:         "Changed row is updated",
			cards:        []Card{{ID: 1, Title: "B"}},
			records:      []DestinationRecord{{RecordID: "recX", Card: Card{ID: 1, Title: "A"}}},
			expectCreate: []Action{},
			expectUpdate: []Action{
				{Type: ActionUpdate, Key: "1", RecordID: "recX", Card: Card{ID: 1, Title: "B"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ComputeOperations(tt.cards, tt.records, ByCardID)
			assert.Equal(t, tt.expectCreate, plan.Create)
			assert.Equal(t, tt.expectUpdate, plan.Update)
		})
	}
}

func TestComputeOperations_EmptyEquivalence(t *testing.T) {
	card := Card{ID: 7, Column: "Backlog", Title: "A", Assignees: []string{}}
	record := DestinationRecord{RecordID: "rec7", Card: Card{ID: 7, Column: "Backlog", Title: "A"}}

	plan := ComputeOperations([]Card{card}, []DestinationRecord{record}, ByCardID)
	assert.True(t, plan.Empty())
	assert.Equal(t, 1, plan.Summary.Unchanged)
}

func TestComputeOperations_AssigneesAreASet(t *testing.T) {
	card := Card{ID: 1, Assignees: []string{"b", "a"}}
	record := DestinationRecord{RecordID: "rec1", Card: Card{ID: 1, Assignees: []string{"a", "b"}}}

	plan := ComputeOperations([]Card{card}, []DestinationRecord{record}, ByCardID)
	assert.True(t, plan.Empty())

	// Normalization must not reorder the caller's slice
	assert.Equal(t, []string{"b", "a"}, card.Assignees)
}

func TestComputeOperations_DeadlineChange(t *testing.T) {
	d1, err := NewDate(2020, time.March, 4)
	require.NoError(t, err)
	d2, err := NewDate(2020, time.March, 5)
	require.NoError(t, err)

	records := []DestinationRecord{
		{RecordID: "rec1", Card: Card{ID: 1, Deadline: &d1}},
		{RecordID: "rec2", Card: Card{ID: 2, Deadline: &d1}},
		{RecordID: "rec3", Card: Card{ID: 3}},
	}
	same := d1
	cards := []Card{
		{ID: 1, Deadline: &same},
		{ID: 2, Deadline: &d2},
		{ID: 3, Deadline: nil},
	}

	plan := ComputeOperations(cards, records, ByCardID)
	require.Len(t, plan.Update, 1)
	assert.Equal(t, "rec2", plan.Update[0].RecordID)
	assert.Equal(t, 2, plan.Summary.Unchanged)
}

func TestComputeOperations_Partition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		var cards []Card
		var records []DestinationRecord
		for id := int64(1); id <= 50; id++ {
			card := Card{ID: id, Title: "t"}
			cards = append(cards, card)
			switch rng.Intn(3) {
			case 0:
				// absent from destination
			case 1:
				records = append(records, DestinationRecord{RecordID: "rec" + card.Key(), Card: card})
			case 2:
				records = append(records, DestinationRecord{RecordID: "rec" + card.Key(), Card: Card{ID: id, Title: "old"}})
			}
		}

		plan := ComputeOperations(cards, records, ByCardID)

		seen := make(map[string]int)
		for _, a := range plan.Create {
			seen[a.Key]++
		}
		for _, a := range plan.Update {
			seen[a.Key]++
		}
		assert.Equal(t, len(cards), len(seen)+plan.Summary.Unchanged)
		for key, n := range seen {
			assert.Equal(t, 1, n, "card %s planned more than once", key)
		}
	}
}

func TestComputeOperations_OrderIndependent(t *testing.T) {
	cards := []Card{{ID: 3, Title: "c"}, {ID: 1, Title: "a"}, {ID: 12, Title: "l"}, {ID: 2, Title: "b"}}
	records := []DestinationRecord{
		{RecordID: "rec2", Card: Card{ID: 2, Title: "old"}},
		{RecordID: "rec12", Card: Card{ID: 12, Title: "old"}},
	}

	first := ComputeOperations(cards, records, ByCardID)

	reversedCards := []Card{cards[3], cards[2], cards[1], cards[0]}
	reversedRecords := []DestinationRecord{records[1], records[0]}
	second := ComputeOperations(reversedCards, reversedRecords, ByCardID)

	assert.Equal(t, first, second)
	assert.Equal(t, "1", first.Create[0].Key)
	assert.Equal(t, "3", first.Create[1].Key)
	assert.Equal(t, "2", first.Update[0].Key)
	assert.Equal(t, "12", first.Update[1].Key)
}

func TestComputeOperations_CustomIdentity(t *testing.T) {
	identity, err := IdentityByField("card_url")
	require.NoError(t, err)

	cards := []Card{{ID: 1, CardURL: "https://api.github.com/projects/columns/cards/1", Title: "new"}}
	records := []DestinationRecord{{RecordID: "recA", Card: Card{ID: 0, CardURL: "https://api.github.com/projects/columns/cards/1", Title: "new"}}}

	plan := ComputeOperations(cards, records, identity)
	require.Len(t, plan.Update, 1)
	assert.Equal(t, "recA", plan.Update[0].RecordID)

	_, err = IdentityByField("title")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff(Card{ID: 1, Assignees: []string{}}, Card{ID: 1}))
	assert.NotEmpty(t, Diff(Card{ID: 1, Title: "A"}, Card{ID: 1, Title: "B"}))
}
