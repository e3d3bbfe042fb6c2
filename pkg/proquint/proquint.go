// Copyright 2023 The Riserctl Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package proquint encodes integers as pronounceable quintuplets, per the
// scheme described in https://arxiv.org/html/0901.4016. Riserctl uses 32-bit
// proquints (lusab-babad) as run identifiers: easy to read off a terminal,
// easy to say over a shoulder, and short enough to type into a stop command.
package proquint

import (
	"fmt"
	"strings"
)

const (
	consonants = "bdfghjklmnprstvz" // Four bits each.
	vowels     = "aiou"             // Two bits each.
)

// FromUint16 encodes i as a single quintuplet. The sixteen bits split into
// con-vo-con-vo-con:
//
//	 F E D C B A 9 8 7 6 5 4 3 2 1 0
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|con    |vo |con    |vo |con    |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
func FromUint16(i uint16) string {
	return string([]byte{
		consonants[i>>12&0xF],
		vowels[i>>10&0x3],
		consonants[i>>6&0xF],
		vowels[i>>4&0x3],
		consonants[i&0xF],
	})
}

// FromUint32 encodes i as two dash-separated quintuplets, high half first.
func FromUint32(i uint32) string {
	return FromUint16(uint16(i>>16)) + "-" + FromUint16(uint16(i))
}

// FromUint64 encodes i as four dash-separated quintuplets, high half first.
func FromUint64(i uint64) string {
	return FromUint32(uint32(i>>32)) + "-" + FromUint32(uint32(i))
}

// ToUint16 decodes a single quintuplet.
func ToUint16(quint string) (uint16, error) {
	if len(quint) != 5 {
		return 0, fmt.Errorf("malformed proquint %q: expected 5 characters", quint)
	}

	var i uint16
	for pos := 0; pos < 5; pos++ {
		c := quint[pos]
		if pos%2 == 0 {
			x := strings.IndexByte(consonants, c)
			if x < 0 {
				return 0, fmt.Errorf("malformed proquint %q: %q is not a consonant", quint, c)
			}
			i = i<<4 | uint16(x)
		} else {
			x := strings.IndexByte(vowels, c)
			if x < 0 {
				return 0, fmt.Errorf("malformed proquint %q: %q is not a vowel", quint, c)
			}
			i = i<<2 | uint16(x)
		}
	}
	return i, nil
}

// ToUint32 decodes two dash-separated quintuplets.
func ToUint32(quint string) (uint32, error) {
	groups := strings.Split(quint, "-")
	if len(groups) != 2 {
		return 0, fmt.Errorf("malformed proquint %q: expected 2 groups", quint)
	}

	hi, err := ToUint16(groups[0])
	if err != nil {
		return 0, err
	}
	lo, err := ToUint16(groups[1])
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// ToUint64 decodes four dash-separated quintuplets.
func ToUint64(quint string) (uint64, error) {
	groups := strings.Split(quint, "-")
	if len(groups) != 4 {
		return 0, fmt.Errorf("malformed proquint %q: expected 4 groups", quint)
	}

	hi, err := ToUint32(groups[0] + "-" + groups[1])
	if err != nil {
		return 0, err
	}
	lo, err := ToUint32(groups[2] + "-" + groups[3])
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// Valid reports whether quint consists of well-formed dash-separated
// quintuplets, of any count.
func Valid(quint string) bool {
	groups := strings.Split(quint, "-")
	if len(groups) == 0 {
		return false
	}
	for _, g := range groups {
		if _, err := ToUint16(g); err != nil {
			return false
		}
	}
	return true
}
