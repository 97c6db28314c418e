package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"movielist-cli/model"
)

const maxConcurrentDetails = 4

// ErrLoadFailed is wrapped by every detail fetch failure.
var ErrLoadFailed = errors.New("load failed")

// FetchDetail fetches the full record for one item. Concurrent calls for the
// same id share a single request; nothing is cached once it completes.
func (c *Client) FetchDetail(ctx context.Context, id int) (model.MovieDetail, error) {
	if id <= 0 {
		return model.MovieDetail{}, fmt.Errorf("%w: invalid id %d", ErrLoadFailed, id)
	}
	key := strconv.Itoa(id)
	endpoint := c.endpoint("/movies", url.Values{"id": {key}})

	ch := c.inflight.DoChan(key, func() (any, error) {
		// shared by every waiter, so it must not die with the first caller
		return c.fetchDetail(context.WithoutCancel(ctx), endpoint, id)
	})

	select {
	case <-ctx.Done():
		return model.MovieDetail{}, fmt.Errorf("%w: %w", ErrLoadFailed, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return model.MovieDetail{}, res.Err
		}
		return res.Val.(model.MovieDetail), nil
	}
}

func (c *Client) fetchDetail(ctx context.Context, endpoint string, id int) (model.MovieDetail, error) {
	var detail model.MovieDetail
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return model.MovieDetail{}, fmt.Errorf("%w: item %d: %w", ErrLoadFailed, id, err)
	}
	if detail.ID == 0 {
		return model.MovieDetail{}, fmt.Errorf("%w: item %d: empty response", ErrLoadFailed, id)
	}
	return detail, nil
}

// DetailResult is one entry of a FetchDetails batch.
type DetailResult struct {
	ID     int
	Detail model.MovieDetail
	Err    error
}

// FetchDetails fetches several items with bounded concurrency. Results keep the order of ids.
func (c *Client) FetchDetails(ctx context.Context, ids []int) []DetailResult {
	results := make([]DetailResult, len(ids))
	p := pool.New().WithMaxGoroutines(maxConcurrentDetails)
	for i, id := range ids {
		i, id := i, id
		p.Go(func() {
			detail, err := c.FetchDetail(ctx, id)
			results[i] = DetailResult{ID: id, Detail: detail, Err: err}
		})
	}
	p.Wait()
	return results
}
