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

package mapping

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// TimeLayouts are the accepted timestamp formats: ISO 8601 date-times with or
// without fractional seconds, with a literal Z or a numeric offset.
var TimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
}

var timeType = reflect.TypeOf(time.Time{})

func stringToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}

	s := reflect.ValueOf(data).String()
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("invalid date-time %q, expected ISO 8601 format", s)
}

// integralNumberHook rejects fractional numbers for integer fields instead of
// truncating them.
func integralNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}

	f := reflect.ValueOf(data).Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("expected an integer, got %s", strconv.FormatFloat(f, 'g', -1, 64))
	}
	if isUnsigned(to.Kind()) && f < 0 {
		return nil, fmt.Errorf("expected a non-negative integer, got %s", strconv.FormatFloat(f, 'g', -1, 64))
	}
	if !fitsInteger(f, to) {
		return nil, fmt.Errorf("integer out of range, got %s", strconv.FormatFloat(f, 'g', -1, 64))
	}
	return data, nil
}

// fitsInteger reports whether the whole number f is representable by the
// integer type t.
func fitsInteger(f float64, t reflect.Type) bool {
	bits := t.Bits()
	if isUnsigned(t.Kind()) {
		return f >= 0 && f < math.Ldexp(1, bits)
	}
	limit := math.Ldexp(1, bits-1)
	return f >= -limit && f < limit
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
