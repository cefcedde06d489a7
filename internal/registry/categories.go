package registry

import (
	"context"
	"fmt"
	"net/url"
)

// Categories returns the top level of the taxonomy.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.doJSON(ctx, "GET", "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Subcategories returns the second taxonomy level under one category.
func (c *Client) Subcategories(ctx context.Context, categoria string) ([]string, error) {
	path := fmt.Sprintf("/categories/%s/subcategories", url.PathEscape(categoria))
	var subcategories []string
	if err := c.doJSON(ctx, "GET", path, nil, nil, &subcategories); err != nil {
		return nil, err
	}
	return subcategories, nil
}

// Groups returns the third taxonomy level under a (category, subcategory)
// pair. A group is only meaningful under that exact pair.
func (c *Client) Groups(ctx context.Context, categoria, subcategoria string) ([]string, error) {
	path := fmt.Sprintf("/categories/%s/%s/groups",
		url.PathEscape(categoria), url.PathEscape(subcategoria))
	var groups []string
	if err := c.doJSON(ctx, "GET", path, nil, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
