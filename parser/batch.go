// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package parser

import (
	"context"

	"github.com/l3montree-dev/sbomparser/bom"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Path     string
	Document *bom.Document
	Err      error
}

// ParseFiles parses independent files with at most limit concurrent parses
// (unbounded if limit <= 0). Results keep the order of paths. A failing file
// does not stop the others, files not started before ctx is done get ctx.Err().
func ParseFiles(ctx context.Context, p Parser, paths []string, limit int) []Result {
	results := make([]Result, len(paths))

	group := errgroup.Group{}
	if limit > 0 {
		group.SetLimit(limit)
	}

	for i, path := range paths {
		results[i].Path = path
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Document, results[i].Err = p.ParseFile(path)
			return nil
		})
	}

	// the goroutines never fail, errors are stored per result
	_ = group.Wait()
	return results
}
