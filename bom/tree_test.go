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

package bom

import (
	"fmt"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(components []*Component) []string {
	result := make([]string, 0, len(components))
	for _, c := range components {
		result = append(result, c.Name)
	}
	return result
}

// a
// ├── b
// │   └── c
// └── d
// e
// └── f
func forest() *Document {
	return &Document{
		BOMFormat:   "CycloneDX",
		SpecVersion: "1.6",
		Components: []Component{
			{
				Name: "a", Type: cdx.ComponentTypeApplication, PackageURL: ptr("pkg:npm/a@1.0.0"),
				Components: []Component{
					{
						Name: "b", Type: cdx.ComponentTypeLibrary, PackageURL: ptr("pkg:npm/dup@1.0.0"),
						Components: []Component{
							{Name: "c", Type: cdx.ComponentTypeLibrary, PackageURL: ptr("pkg:npm/c@1.0.0")},
						},
					},
					{Name: "d", Type: cdx.ComponentTypeFramework},
				},
			},
			{
				Name: "e", Type: cdx.ComponentTypeContainer,
				Components: []Component{
					{Name: "f", Type: cdx.ComponentTypeLibrary, PackageURL: ptr("pkg:npm/dup@1.0.0")},
				},
			},
		},
	}
}

func chain(depth int) *Document {
	root := Component{Name: "leaf", Type: cdx.ComponentTypeLibrary}
	for i := depth - 1; i > 0; i-- {
		root = Component{Name: fmt.Sprintf("level-%d", i), Type: cdx.ComponentTypeLibrary, Components: []Component{root}}
	}
	return &Document{Components: []Component{root}}
}

func TestFlatten(t *testing.T) {
	t.Run("should return an empty sequence if the components are absent", func(t *testing.T) {
		doc := &Document{}
		assert.Empty(t, doc.Flatten())
		assert.False(t, doc.HasComponents())
	})

	t.Run("should return an empty sequence if the components are an empty list", func(t *testing.T) {
		doc := &Document{Components: []Component{}}
		assert.Empty(t, doc.Flatten())
		assert.False(t, doc.HasComponents())
		assert.NotNil(t, doc.Components)
	})

	t.Run("should return the components in pre-order", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, names(forest().Flatten()))
	})

	t.Run("should return the same order on every call", func(t *testing.T) {
		doc := forest()
		first := doc.Flatten()
		second := doc.Flatten()
		assert.Equal(t, first, second)
		assert.Len(t, first, doc.ComponentCount())
	})

	t.Run("should return pointers into the document", func(t *testing.T) {
		doc := forest()
		flat := doc.Flatten()
		assert.Same(t, &doc.Components[0].Components[0].Components[0], flat[2])
	})

	t.Run("should not recurse on deeply nested trees", func(t *testing.T) {
		doc := chain(MaxTreeDepth)
		assert.Len(t, doc.Flatten(), MaxTreeDepth)
	})

	t.Run("should skip subtrees below the maximum depth", func(t *testing.T) {
		doc := chain(MaxTreeDepth + 10)
		assert.Len(t, doc.Flatten(), MaxTreeDepth)
	})
}

func TestAll(t *testing.T) {
	t.Run("should stop when the consumer breaks", func(t *testing.T) {
		visited := 0
		for c := range forest().All() {
			visited++
			if c.Name == "c" {
				break
			}
		}
		assert.Equal(t, 3, visited)
	})
}

func TestWalk(t *testing.T) {
	t.Run("should report the depth of every component", func(t *testing.T) {
		depths := map[string]int{}
		err := forest().Walk(func(c *Component, depth int) error {
			depths[c.Name] = depth
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2, "d": 1, "e": 0, "f": 1}, depths)
	})

	t.Run("should stop at the first error of the callback", func(t *testing.T) {
		stop := errors.New("stop")
		var visited []string
		err := forest().Walk(func(c *Component, depth int) error {
			visited = append(visited, c.Name)
			if c.Name == "b" {
				return stop
			}
			return nil
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, []string{"a", "b"}, visited)
	})

	t.Run("should fail if the tree is nested deeper than the maximum depth", func(t *testing.T) {
		err := chain(MaxTreeDepth+1).Walk(func(c *Component, depth int) error { return nil })
		assert.ErrorIs(t, err, ErrMaxDepthExceeded)
	})
}

func TestFilterByType(t *testing.T) {
	t.Run("should return the matching components in pre-order", func(t *testing.T) {
		assert.Equal(t, []string{"b", "c", "f"}, names(forest().FilterByType(cdx.ComponentTypeLibrary)))
	})

	t.Run("should return a subsequence of flatten for every type", func(t *testing.T) {
		doc := forest()
		flat := doc.Flatten()
		total := 0
		for _, componentType := range ComponentTypes {
			filtered := doc.FilterByType(componentType)
			total += len(filtered)

			i := 0
			for _, c := range flat {
				if i < len(filtered) && c == filtered[i] {
					i++
				}
			}
			assert.Equal(t, len(filtered), i, "type %s", componentType)
			for _, c := range filtered {
				assert.Equal(t, componentType, c.Type)
			}
		}
		assert.Equal(t, len(flat), total)
	})

	t.Run("should return an empty result for an empty document", func(t *testing.T) {
		assert.Empty(t, (&Document{}).FilterByType(cdx.ComponentTypeLibrary))
	})
}

func TestFindByPackageURL(t *testing.T) {
	t.Run("should return the first match in pre-order", func(t *testing.T) {
		c, ok := forest().FindByPackageURL("pkg:npm/dup@1.0.0")
		require.True(t, ok)
		assert.Equal(t, "b", c.Name)
	})

	t.Run("should find nested components", func(t *testing.T) {
		c, ok := forest().FindByPackageURL("pkg:npm/c@1.0.0")
		require.True(t, ok)
		assert.Equal(t, "c", c.Name)
	})

	t.Run("should compare byte for byte", func(t *testing.T) {
		_, ok := forest().FindByPackageURL("pkg:NPM/c@1.0.0")
		assert.False(t, ok)
	})

	t.Run("should not match components without a purl", func(t *testing.T) {
		_, ok := forest().FindByPackageURL("")
		assert.False(t, ok)
	})

	t.Run("should match a declared empty purl", func(t *testing.T) {
		doc := &Document{Components: []Component{
			{Name: "absent", Type: cdx.ComponentTypeLibrary},
			{Name: "empty", Type: cdx.ComponentTypeLibrary, PackageURL: ptr("")},
		}}
		c, ok := doc.FindByPackageURL("")
		require.True(t, ok)
		assert.Equal(t, "empty", c.Name)
	})

	t.Run("should return not found if no component has a purl", func(t *testing.T) {
		doc := &Document{Components: []Component{{Name: "x", Type: cdx.ComponentTypeLibrary}}}
		_, ok := doc.FindByPackageURL("pkg:npm/x@1.0.0")
		assert.False(t, ok)
	})
}

func ptr[T any](t T) *T {
	return &t
}
