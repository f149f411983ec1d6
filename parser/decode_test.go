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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestedArrays(depth int) []byte {
	return []byte(strings.Repeat("[", depth) + strings.Repeat("]", depth))
}

func TestDecodeJSON(t *testing.T) {
	t.Run("should decode into generic values", func(t *testing.T) {
		data, err := decodeJSON([]byte(`{"a":[1,"x",true,null]}`), DefaultMaxDepth)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": []any{1.0, "x", true, nil}}, data)
	})

	t.Run("should accept the maximum depth", func(t *testing.T) {
		_, err := decodeJSON(nestedArrays(64), 64)
		assert.NoError(t, err)
	})

	t.Run("should reject one level more than the maximum depth", func(t *testing.T) {
		_, err := decodeJSON(nestedArrays(65), 64)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidJSON)
		assert.ErrorIs(t, err, ErrDepthExceeded)
		assert.Equal(t, "Invalid JSON: Maximum stack depth exceeded", err.Error())
	})

	t.Run("should not count brackets inside strings", func(t *testing.T) {
		content := []byte(`{"a":"` + strings.Repeat("[", 100) + `\"{"}`)
		_, err := decodeJSON(content, 2)
		assert.NoError(t, err)
	})

	t.Run("should reject malformed utf-8", func(t *testing.T) {
		_, err := decodeJSON([]byte("{\"name\":\"\xff\xfe\"}"), DefaultMaxDepth)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEncoding)
		assert.Equal(t, "Invalid JSON: Malformed UTF-8 characters, possibly incorrectly encoded", err.Error())
	})

	t.Run("should report syntax errors", func(t *testing.T) {
		for _, content := range []string{``, `{`, `{"a":}`, `{"a":1}{`} {
			_, err := decodeJSON([]byte(content), DefaultMaxDepth)
			require.Error(t, err, content)
			assert.ErrorIs(t, err, ErrSyntax, content)
			assert.Equal(t, KindInvalidJSON, KindOf(err), content)
			assert.True(t, strings.HasPrefix(err.Error(), "Invalid JSON: "), content)
		}
	})
}

func nestedValue(depth int) any {
	var v any = map[string]any{}
	for range depth - 1 {
		v = []any{v}
	}
	return v
}

func TestCheckValueDepth(t *testing.T) {
	t.Run("should accept the maximum depth", func(t *testing.T) {
		assert.NoError(t, checkValueDepth(nestedValue(64), 64))
	})

	t.Run("should reject one level more than the maximum depth", func(t *testing.T) {
		err := checkValueDepth(nestedValue(65), 64)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.ErrorIs(t, err, ErrDepthExceeded)
		assert.Equal(t, "SBOM validation failed: Maximum stack depth exceeded", err.Error())
	})

	t.Run("should reject cyclic values", func(t *testing.T) {
		cyclic := map[string]any{"bomFormat": "CycloneDX"}
		cyclic["self"] = cyclic
		assert.ErrorIs(t, checkValueDepth(cyclic, DefaultMaxDepth), ErrDepthExceeded)
	})

	t.Run("should count typed containers", func(t *testing.T) {
		typed := map[string][]map[string]string{"a": {{"b": "c"}}}
		assert.NoError(t, checkValueDepth(typed, 3))
		assert.Error(t, checkValueDepth(typed, 2))
	})

	t.Run("should accept scalars and nil", func(t *testing.T) {
		assert.NoError(t, checkValueDepth(nil, 1))
		assert.NoError(t, checkValueDepth("x", 1))
	})
}
