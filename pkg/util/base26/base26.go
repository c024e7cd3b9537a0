// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
// Package base26 provides human readable labels for non-negative integers,
// using the letters of the latin alphabet as digits.  For example, 0 is "a",
// 25 is "z", 26 is "ba" and 27 is "bb".  Labels are written most significant
// digit first.
package base26

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLabel is reported when decoding a string which is not a label.
var ErrInvalidLabel = errors.New("invalid base26 label")

// Digits returns the number of base26 digits required to encode n, which is
// 1 + ⌊log26(n)⌋ for n ≥ 1 and 1 for n = 0.
func Digits(n uint64) uint {
	digits := uint(1)
	//
	for n >= 26 {
		n /= 26
		digits++
	}
	//
	return digits
}

// Encode a number as a lowercase label.
func Encode(n uint64) string {
	return encode(n, 'a')
}

// EncodeUpper encodes a number as an uppercase label.
func EncodeUpper(n uint64) string {
	return encode(n, 'A')
}

func encode(n uint64, start byte) string {
	// log26(2^64) ~= 13.61
	var buffer [14]byte
	//
	digits := Digits(n)
	//
	for i := digits; i > 0; i-- {
		buffer[i-1] = start + byte(n%26)
		n /= 26
	}
	//
	return string(buffer[:digits])
}

// Decode a label written in either case back into the number it encodes.
func Decode(label string) (uint64, error) {
	var value uint64
	//
	if label == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidLabel)
	}
	//
	for i := 0; i < len(label); i++ {
		var digit uint64
		//
		switch c := label[i]; {
		case c >= 'a' && c <= 'z':
			digit = uint64(c - 'a')
		case c >= 'A' && c <= 'Z':
			digit = uint64(c - 'A')
		default:
			return 0, fmt.Errorf("%w: unexpected character %q in %q", ErrInvalidLabel, c, label)
		}
		//
		if value > (math.MaxUint64-digit)/26 {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidLabel, label)
		}
		//
		value = (value * 26) + digit
	}
	//
	return value, nil
}

// MustDecode decodes a label, panicking if it is malformed.  This is intended
// for labels fixed at compile time.
func MustDecode(label string) uint64 {
	n, err := Decode(label)
	if err != nil {
		panic(err.Error())
	}
	//
	return n
}
