// Package board implements the card source for a GitHub project board.
//
// It walks the board through the projects REST API: columns first, then each
// column's cards, then the issue each card links to. Columns and cards are
// fetched concurrently and the adapter waits for every call before returning.
// One failed call fails the whole fetch, so a partial board is never returned.
//
// # Deadline Marker
//
// A card's deadline is read from the text "deadline:M/D/YYYY". The card note is
// searched first, then the issue title, then the issue body; the first valid
// marker wins.
//
// # Usage
//
//	adapter := board.NewAdapter(cfg.Board, logger)
//	cards, err := adapter.FetchCards(ctx)
package board
