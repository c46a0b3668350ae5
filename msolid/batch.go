// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// UpdateBatch updates independent points concurrently with at most nworkers goroutines
// (nworkers <= 0 means no limit). The first error cancels the remaining updates
func UpdateBatch(ctx context.Context, mat *Multi, pts []*Point, Δε [][]float64, nworkers int) error {
	if len(Δε) != len(pts) {
		return fmt.Errorf("update batch: %d strain increments given for %d points", len(Δε), len(pts))
	}
	g, ctx := errgroup.WithContext(ctx)
	if nworkers > 0 {
		g.SetLimit(nworkers)
	}
	for i := range pts {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := mat.Update(pts[i], Δε[i], nil); err != nil {
				return fmt.Errorf("point %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}
