// Package service builds feed pages
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"juryduty/internal/modkit/repokit"
	perr "juryduty/internal/platform/errors"
	"juryduty/internal/services/api/feed/domain"
	"juryduty/internal/services/api/feed/repo"
	votes "juryduty/internal/services/api/votes/domain"
)

// Svc implements domain.ServicePort
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a feed service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("feed.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("feed.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db), binder: binder, db: db}
}

// Page returns one page of completed disputes, pages below 1 read as 1
// the page and the total are queried concurrently
func (s *Svc) Page(ctx context.Context, sort string, page int) (domain.Page, error) {
	switch sort {
	case "":
		sort = domain.SortNewest
	case domain.SortNewest, domain.SortMostVotes:
	default:
		return domain.Page{}, perr.WithField(perr.Validationf("sort must be newest or most_votes"), "sort")
	}
	if page > domain.MaxPage {
		return domain.Page{}, perr.WithField(perr.Validationf("page must be at most %d", domain.MaxPage), "page")
	}
	page = max(page, 1)

	var (
		rows  []repo.Row
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = s.Repo.List(gctx, sort == domain.SortMostVotes, domain.PageSize, (page-1)*domain.PageSize)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.Repo.CountCompleted(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Page{}, err
	}

	items := make([]domain.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.Item{
			ID:          r.ID,
			Kind:        r.Kind,
			Topic:       r.Topic,
			PersonAName: r.PersonAName,
			PersonBName: r.PersonBName,
			TeaserA:     r.TeaserA,
			TeaserB:     r.TeaserB,
			CompletedAt: r.CompletedAt,
			Votes:       votes.NewCounts(r.VotesA, r.VotesB),
		})
	}
	return domain.Page{
		Disputes:   items,
		Total:      total,
		Page:       page,
		TotalPages: (total + domain.PageSize - 1) / domain.PageSize,
		Sort:       sort,
	}, nil
}
