package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movielist-cli/model"
)

var errMalformedList = errors.New("malformed list response")

// FetchList returns both buckets. A response of the wrong shape yields two
// empty buckets and no error; transport and status failures yield two empty
// buckets and the error, so callers can offer a retry.
func (c *Client) FetchList(ctx context.Context) (model.MyList, error) {
	endpoint := c.endpoint("/mylist", nil)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return model.EmptyList(), err
	}
	list, err := decodeMyList(body)
	if err != nil {
		c.logger.Warn("service.mylist_malformed", "endpoint", endpoint, "err", err)
		return model.EmptyList(), nil
	}
	return list, nil
}

func decodeMyList(body []byte) (model.MyList, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(body, &shape); err != nil {
		return model.MyList{}, fmt.Errorf("%w: %w", errMalformedList, err)
	}

	list := model.EmptyList()
	for _, status := range model.Statuses {
		raw, ok := shape[string(status)]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return model.MyList{}, fmt.Errorf("%w: missing %q", errMalformedList, status)
		}
		var entries []model.WatchlistEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return model.MyList{}, fmt.Errorf("%w: %q: %w", errMalformedList, status, err)
		}
		if entries == nil {
			entries = []model.WatchlistEntry{}
		}
		switch status {
		case model.StatusToWatch:
			list.ToWatch = entries
		case model.StatusWatched:
			list.Watched = entries
		}
	}
	return list, nil
}

// AddToList asks the server to put itemID in the bucket for status. It does not
// touch any local copy of the list; callers refetch to observe the change, and
// an immediate refetch may not reflect it yet. The request is never retried.
func (c *Client) AddToList(ctx context.Context, itemID int, status model.Status) error {
	if itemID <= 0 {
		return fmt.Errorf("invalid item id %d", itemID)
	}
	if status != model.StatusToWatch && status != model.StatusWatched {
		return fmt.Errorf("invalid status %q", status)
	}
	req := model.AddRequest{MovieID: itemID, Status: status}
	if err := c.postJSON(ctx, c.endpoint("/mylist/add", nil), req); err != nil {
		c.logger.Warn("service.mylist_add_failed", "movie_id", itemID, "status", status, "err", err)
		return fmt.Errorf("add %d to %q: %w", itemID, status, err)
	}
	c.logger.Info("service.mylist_added", "movie_id", itemID, "status", status)
	return nil
}
