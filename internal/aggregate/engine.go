// Package aggregate recomputes derived summary rows from their raw rows.
//
// Every recomputation is a full rewrite: read all contributing rows, reduce,
// upsert the summary. The result is always an exact function of the raw rows
// at read time, so re-running a recompute never makes an aggregate worse —
// a stale aggregate self-heals on the next mutation. No ordering is imposed
// across concurrent recomputations for the same key; the later write-back
// wins. Opt-in per-key serialization closes that window for deployments that
// want it.
package aggregate

import (
	"context"
	"sync"

	"github.com/sipzy/sipzy-backend/internal/config"
	"github.com/sipzy/sipzy-backend/internal/logx"
	"github.com/sipzy/sipzy-backend/internal/store"
)

// Store is the slice of the relational store the engine reads raw rows from
// and writes summary rows to. *store.DB satisfies it.
type Store interface {
	GetUserRatingsByBeverageId(ctx context.Context, beverageId string) ([]store.UserRatingDb, error)
	GetExpertRatingsByBeverageId(ctx context.Context, beverageId string) ([]store.ExpertRatingDb, error)
	UpsertHumanAggregate(ctx context.Context, beverageId string, sum, count int) error
	UpsertExpertAggregate(ctx context.Context, beverageId string, sum float64, count int) error

	CountFriendEdges(ctx context.Context, userId string) (int64, error)
	CountBookmarks(ctx context.Context, userId string) (int64, error)
	UpsertFriendsBadge(ctx context.Context, userId string, friendsCount int64) error
	UpsertBookmarkBadge(ctx context.Context, userId string, bookmarkCount int64) error
}

type Engine struct {
	store     Store
	mode      config.RecomputeMode
	serialize bool

	locks keyedLocks
	wg    sync.WaitGroup
}

func NewEngine(s Store, mode config.RecomputeMode, serialize bool) *Engine {
	return &Engine{store: s, mode: mode, serialize: serialize}
}

// RecomputeBeverage rewrites the human half of the beverage summary row from
// the full set of user ratings.
func (e *Engine) RecomputeBeverage(ctx context.Context, beverageId string) error {
	return e.run(ctx, "beverage:"+beverageId, "beverage aggregate", func(ctx context.Context) error {
		ratings, err := e.store.GetUserRatingsByBeverageId(ctx, beverageId)
		if err != nil {
			return err
		}

		sum := 0
		for _, rating := range ratings {
			sum += rating.Rating
		}

		return e.store.UpsertHumanAggregate(ctx, beverageId, sum, len(ratings))
	})
}

// RecomputeExpert rewrites the expert half of the beverage summary row. Each
// expert rating is folded to the mean of its four sub-scores before summing,
// which keeps the expert sum on the same 1..5 scale as the human one.
func (e *Engine) RecomputeExpert(ctx context.Context, beverageId string) error {
	return e.run(ctx, "beverage:"+beverageId, "expert aggregate", func(ctx context.Context) error {
		ratings, err := e.store.GetExpertRatingsByBeverageId(ctx, beverageId)
		if err != nil {
			return err
		}

		sum := 0.0
		for _, rating := range ratings {
			sum += float64(rating.PresentationRating+
				rating.TasteRating+
				rating.IngredientsRating+
				rating.AccuracyRating) / 4
		}

		return e.store.UpsertExpertAggregate(ctx, beverageId, sum, len(ratings))
	})
}

// RecomputeFriendsBadge rewrites friendsCount for one user from a fresh edge
// count.
func (e *Engine) RecomputeFriendsBadge(ctx context.Context, userId string) error {
	return e.run(ctx, "badge:"+userId, "friends badge", func(ctx context.Context) error {
		count, err := e.store.CountFriendEdges(ctx, userId)
		if err != nil {
			return err
		}
		return e.store.UpsertFriendsBadge(ctx, userId, count)
	})
}

// RecomputeBookmarkBadge rewrites bookmarkCount for one user from a fresh
// bookmark count.
func (e *Engine) RecomputeBookmarkBadge(ctx context.Context, userId string) error {
	return e.run(ctx, "badge:"+userId, "bookmark badge", func(ctx context.Context) error {
		count, err := e.store.CountBookmarks(ctx, userId)
		if err != nil {
			return err
		}
		return e.store.UpsertBookmarkBadge(ctx, userId, count)
	})
}

// Wait blocks until every detached recomputation in flight has settled. Used
// on shutdown and in tests; a no-op under the sync mode.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// run applies the configured policy to one recomputation. Under the detached
// mode the work runs on its own goroutine with a context that survives the
// request: caller cancellation must not abort a recompute that the caller was
// already told succeeded.
func (e *Engine) run(ctx context.Context, key, op string, fn func(context.Context) error) error {
	if e.mode != config.RecomputeDetached {
		return e.exec(ctx, key, fn)
	}

	logger := logx.FromContext(ctx)
	detachedCtx := context.WithoutCancel(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.exec(detachedCtx, key, fn); err != nil {
			logger.Printf("ERROR: detached %s recompute for %s: %v", op, key, err)
		}
	}()

	return nil
}

func (e *Engine) exec(ctx context.Context, key string, fn func(context.Context) error) error {
	if e.serialize {
		unlock := e.locks.lock(key)
		defer unlock()
	}
	return fn(ctx)
}
