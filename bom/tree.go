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
	"iter"

	"github.com/pkg/errors"
)

// MaxTreeDepth caps the nesting level the tree engine descends into.
// Top level components have depth 0.
const MaxTreeDepth = 1024

var ErrMaxDepthExceeded = errors.New("component tree exceeds maximum depth")

type frame struct {
	component *Component
	depth     int
}

// pushChildren pushes in reverse so the first child is popped first.
func pushChildren(stack []frame, children []Component, depth int) []frame {
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, frame{component: &children[i], depth: depth})
	}
	return stack
}

// Walk visits every component in pre-order. It stops at the first error
// returned by fn and fails with ErrMaxDepthExceeded when a component is
// nested deeper than MaxTreeDepth.
func (d *Document) Walk(fn func(c *Component, depth int) error) error {
	stack := pushChildren(nil, d.Components, 0)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth >= MaxTreeDepth {
			return errors.Wrapf(ErrMaxDepthExceeded, "component %q", f.component.Name)
		}
		if err := fn(f.component, f.depth); err != nil {
			return err
		}
		stack = pushChildren(stack, f.component.Components, f.depth+1)
	}
	return nil
}

// All iterates the component forest in pre-order. Subtrees below
// MaxTreeDepth are skipped.
func (d *Document) All() iter.Seq[*Component] {
	return func(yield func(*Component) bool) {
		stack := pushChildren(nil, d.Components, 0)
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if f.depth >= MaxTreeDepth {
				continue
			}
			if !yield(f.component) {
				return
			}
			stack = pushChildren(stack, f.component.Components, f.depth+1)
		}
	}
}

// Flatten returns every component of the document in pre-order: a component
// comes before its children, children left to right. The result is computed
// on every call.
func (d *Document) Flatten() []*Component {
	result := make([]*Component, 0, len(d.Components))
	for c := range d.All() {
		result = append(result, c)
	}
	return result
}

// FilterByType returns the flattened components of the given type, in pre-order.
func (d *Document) FilterByType(t ComponentType) []*Component {
	result := make([]*Component, 0)
	for c := range d.All() {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// FindByPackageURL returns the first component in pre-order whose purl equals
// purl byte for byte. Components without a purl key never match, a declared
// empty purl matches the empty string.
func (d *Document) FindByPackageURL(purl string) (*Component, bool) {
	for c := range d.All() {
		if c.PackageURL != nil && *c.PackageURL == purl {
			return c, true
		}
	}
	return nil, false
}

func (d *Document) ComponentCount() int {
	n := 0
	for range d.All() {
		n++
	}
	return n
}
