package fivetran

import "context"

// GroupsPager walks the groups collection one page at a time following the
// next_cursor chain.
type GroupsPager struct {
	client *Client
	limit  int
	cursor string
	done   bool
}

// NewGroupsPager creates a pager over all groups. limit is the page size
// requested per call.
func (c *Client) NewGroupsPager(limit int) *GroupsPager {
	return &GroupsPager{
		client: c,
		limit:  limit,
	}
}

// HasMorePages reports whether another page can be fetched.
func (p *GroupsPager) HasMorePages() bool {
	return !p.done
}

// NextPage fetches the next page of groups.
func (p *GroupsPager) NextPage(ctx context.Context) ([]Group, error) {
	list, err := p.client.ListGroups(ctx, &ListParams{Limit: p.limit, Cursor: p.cursor})
	if err != nil {
		return nil, err
	}

	if list.NextCursor == "" {
		p.done = true
	} else {
		p.cursor = list.NextCursor
	}

	return list.Items, nil
}
