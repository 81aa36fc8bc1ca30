package board

import (
	"context"

	"card-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Adapter implements reconcile.Source for a project board.
type Adapter struct {
	client      *Client
	projectID   int64
	concurrency int
	logger      *zap.Logger
}

// NewAdapter creates a board source from configuration.
func NewAdapter(cfg Config, logger *zap.Logger) *Adapter {
	return NewAdapterWithClient(NewClient(cfg), cfg.ProjectID, cfg.Concurrency, logger)
}

// NewAdapterWithClient creates a board source over an existing client.
func NewAdapterWithClient(client *Client, projectID int64, concurrency int, logger *zap.Logger) *Adapter {
	if concurrency <= 0 {
		concurrency = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		client:      client,
		projectID:   projectID,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Name returns the unique name of this source.
func (a *Adapter) Name() string {
	return "board"
}

// FetchCards fetches every column, then each column's cards concurrently, then
// each card's linked issue concurrently, and merges them into cards. Archived
// cards are skipped. Any failed call fails the whole fetch. Cards keep their
// order within a column and columns keep board order.
func (a *Adapter) FetchCards(ctx context.Context) ([]reconcile.Card, error) {
	columns, err := a.client.ListColumns(ctx, a.projectID)
	if err != nil {
		return nil, err
	}

	perColumn := make([][]reconcile.Card, len(columns))
	g, gctx := errgroup.WithContext(ctx)

	for i, column := range columns {
		g.Go(func() error {
			cards, err := a.fetchColumn(gctx, column)
			if err != nil {
				return err
			}
			perColumn[i] = cards
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var cards []reconcile.Card
	for _, columnCards := range perColumn {
		cards = append(cards, columnCards...)
	}

	a.logger.Debug("Fetched board cards",
		zap.Int64("project_id", a.projectID),
		zap.Int("columns", len(columns)),
		zap.Int("cards", len(cards)),
	)

	return cards, nil
}

func (a *Adapter) fetchColumn(ctx context.Context, column Column) ([]reconcile.Card, error) {
	projectCards, err := a.client.ListCards(ctx, column.CardsURL)
	if err != nil {
		return nil, err
	}

	var active []ProjectCard
	for _, pc := range projectCards {
		if !pc.Archived {
			active = append(active, pc)
		}
	}

	cards := make([]reconcile.Card, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, pc := range active {
		g.Go(func() error {
			var issue *Issue
			if pc.ContentURL != "" {
				var err error
				issue, err = a.client.GetIssue(gctx, pc.ContentURL)
				if err != nil {
					return err
				}
			}
			cards[i] = buildCard(column, pc, issue)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}

// buildCard merges a project card with its linked issue, if any.
func buildCard(column Column, pc ProjectCard, issue *Issue) reconcile.Card {
	card := reconcile.Card{
		ID:            pc.ID,
		Column:        column.Name,
		Note:          pc.Note,
		CardCreatedAt: pc.CreatedAt,
		CardURL:       pc.URL,
		Deadline:      ExtractDeadline(deadlineCandidates(pc, issue)...),
	}

	if issue != nil {
		card.Title = issue.Title
		card.Body = issue.Body
		card.State = issue.State
		card.IssueNumber = issue.Number
		card.IssueURL = issue.HTMLURL
		card.IssueCreatedAt = issue.CreatedAt
		for _, user := range issue.Assignees {
			card.Assignees = append(card.Assignees, user.Login)
		}
	}

	return card
}
