/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Strata Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package columns

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindEnsemble
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindEnsemble:
		return "ensemble"
	default:
		return "unknown"
	}
}

// EnsembleIdent identifies an ensemble within a case.
type EnsembleIdent struct {
	CaseUUID     string `json:"caseUuid"`
	EnsembleName string `json:"ensembleName"`
}

func (e EnsembleIdent) String() string {
	return fmt.Sprintf("%s (%s)", e.EnsembleName, e.CaseUUID)
}

// Value is a single table cell. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	ens  EnsembleIdent
}

// NullValue returns the missing value.
func NullValue() Value {
	return Value{}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue wraps a number.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// EnsembleValue wraps an ensemble identifier.
func EnsembleValue(e EnsembleIdent) Value {
	return Value{kind: KindEnsemble, ens: e}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the string held by v, if any.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Number returns the number held by v, if any.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Ensemble returns the ensemble identifier held by v, if any.
func (v Value) Ensemble() (EnsembleIdent, bool) {
	return v.ens, v.kind == KindEnsemble
}

// String returns the display form of v. Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatFloat64(v.num)
	case KindEnsemble:
		return v.ens.String()
	default:
		return ""
	}
}

// Equal reports whether v and o hold the same variant and content.
// NaN equals NaN and -0 equals +0, matching the grouping semantics.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		if math.IsNaN(v.num) || math.IsNaN(o.num) {
			return math.IsNaN(v.num) && math.IsNaN(o.num)
		}
		return v.num == o.num
	case KindEnsemble:
		return v.ens == o.ens
	default:
		return true
	}
}

// AppendKey appends an unambiguous binary encoding of v to dst.
// Two values encode identically iff they are Equal.
func (v Value) AppendKey(dst []byte) []byte {
	dst = append(dst, byte(v.kind))
	switch v.kind {
	case KindString:
		dst = appendLengthPrefixed(dst, v.str)
	case KindNumber:
		f := v.num
		if f == 0 {
			f = 0 // folds -0
		}
		bits := math.Float64bits(f)
		if math.IsNaN(f) {
			bits = math.Float64bits(math.NaN())
		}
		dst = binary.BigEndian.AppendUint64(dst, bits)
	case KindEnsemble:
		dst = appendLengthPrefixed(dst, v.ens.CaseUUID)
		dst = appendLengthPrefixed(dst, v.ens.EnsembleName)
	}
	return dst
}

func appendLengthPrefixed(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// Compare orders values: null first, then numbers, strings and ensembles.
// Numbers compare numerically with NaN after every other number.
func Compare(a, b Value) int {
	ra, rb := kindRank(a.kind), kindRank(b.kind)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindNumber:
		return compareFloat64s(a.num, b.num)
	case KindString:
		return strings.Compare(a.str, b.str)
	case KindEnsemble:
		if c := strings.Compare(a.ens.EnsembleName, b.ens.EnsembleName); c != 0 {
			return c
		}
		return strings.Compare(a.ens.CaseUUID, b.ens.CaseUUID)
	default:
		return 0
	}
}

func kindRank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindNumber:
		return 1
	case KindString:
		return 2
	default:
		return 3
	}
}

func compareFloat64s(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes null, strings, numbers and ensemble objects.
// Non-finite numbers are written as strings since JSON cannot hold them.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return json.Marshal(FormatFloat64(v.num))
		}
		return json.Marshal(v.num)
	case KindEnsemble:
		return json.Marshal(v.ens)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a string, a number or an ensemble object.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = NullValue()
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case '{':
		var e EnsembleIdent
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*v = EnsembleValue(e)
	default:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return fmt.Errorf("unsupported cell value %s: %w", trimmed, err)
		}
		*v = NumberValue(f)
	}
	return nil
}

// FormatFloat64 formats a float64 value for display.
// Returns "NaN" for NaN, "+Inf"/"-Inf" for infinities.
func FormatFloat64(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 1) {
		return "+Inf"
	}
	if math.IsInf(v, -1) {
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseFloat64 parses a string to float64.
// Recognizes "NaN", "Inf", "+Inf", "-Inf" as special values.
func ParseFloat64(s string) (float64, error) {
	switch s {
	case "NaN", "nan", "NAN":
		return math.NaN(), nil
	case "Inf", "+Inf", "inf", "+inf":
		return math.Inf(1), nil
	case "-Inf", "-inf":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(s, 64)
}
