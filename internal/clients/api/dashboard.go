package api

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DashboardCounts holds the record totals shown on the landing page.
type DashboardCounts struct {
	Systems        int64
	Banks          int64
	Municipalities int64
	TradeUnions    int64
	CostCenters    int64
	Employees      int64
}

// DashboardCounts fans out one minimal list call per aggregate and collects
// the totals. A permission failure on one aggregate zeroes that counter
// instead of failing the whole dashboard.
func (c *Client) DashboardCounts(ctx context.Context, token string) (*DashboardCounts, error) {
	var counts DashboardCounts
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, fetch func(context.Context) (int64, error)) func() error {
		return func() error {
			total, err := fetch(ctx)
			if err != nil {
				c.log.Warn("dashboard count failed", "error", err)
				return nil
			}
			*dst = total
			return nil
		}
	}

	g.Go(count(&counts.Systems, func(ctx context.Context) (int64, error) {
		r, err := c.Systems().List(ctx, token, 1, 1, "")
		if err != nil {
			return 0, err
		}
		return r.TotalCount, nil
	}))
	g.Go(count(&counts.Banks, func(ctx context.Context) (int64, error) {
		r, err := c.Banks().List(ctx, token, 1, 1, "")
		if err != nil {
			return 0, err
		}
		return r.TotalCount, nil
	}))
	g.Go(count(&counts.Municipalities, func(ctx context.Context) (int64, error) {
		r, err := c.Municipalities().List(ctx, token, 1, 1, "")
		if err != nil {
			return 0, err
		}
		return r.TotalCount, nil
	}))
	g.Go(count(&counts.TradeUnions, func(ctx context.Context) (int64, error) {
		r, err := c.TradeUnions().List(ctx, token, 1, 1, "")
		if err != nil {
			return 0, err
		}
		return r.TotalCount, nil
	}))
	g.Go(count(&counts.CostCenters, func(ctx context.Context) (int64, error) {
		r, err := c.CostCenters().List(ctx, token, 1, 1, "")
		if err != nil {
			return 0, err
		}
		return r.TotalCount, nil
	}))
	g.Go(count(&counts.Employees, func(ctx context.Context) (int64, error) {
		r, err := c.Employees().List(ctx, token, 1, 1, "")
		if err != nil {
			return 0, err
		}
		return r.TotalCount, nil
	}))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}
