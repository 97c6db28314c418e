package service

import (
	"context"

	"movielist-cli/model"
)

// FetchCatalog returns the full browsable collection.
func (c *Client) FetchCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	if err := c.getJSON(ctx, c.endpoint("/movies/all", nil), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CatalogItem{}
	}
	return items, nil
}
