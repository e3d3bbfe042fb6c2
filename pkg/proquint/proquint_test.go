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

package proquint_test

import (
	"testing"

	"github.com/riserctl/riserctl/pkg/proquint"
)

func TestUint16(t *testing.T) {
	var tests = []struct {
		i     uint16
		quint string
	}{
		{0, "babab"},
		{1, "babad"},
		{2, "babaf"},
		{34, "babof"},
		{129, "bafad"},
		{2510, "bolav"},
		{16241, "gutud"},
		{64298, "zosop"},
	}

	for _, test := range tests {
		if result := proquint.FromUint16(test.i); result != test.quint {
			t.Errorf("expected %s, got %s", test.quint, result)
		}
		result, err := proquint.ToUint16(test.quint)
		if err != nil {
			t.Fatal(err)
		}
		if result != test.i {
			t.Errorf("expected %d, got %d", test.i, result)
		}
	}
}

func TestUint32(t *testing.T) {
	var tests = []struct {
		i     uint32
		quint string
	}{
		{0, "babab-babab"},
		{241418941, "bunog-saput"},
		{31231151, "balis-mufoz"},
		{543123113, "fadiz-kipon"},
	}

	for _, test := range tests {
		if result := proquint.FromUint32(test.i); result != test.quint {
			t.Errorf("expected %s, got %s", test.quint, result)
		}
		result, err := proquint.ToUint32(test.quint)
		if err != nil {
			t.Fatal(err)
		}
		if result != test.i {
			t.Errorf("expected %d, got %d", test.i, result)
		}
	}
}

func TestUint64(t *testing.T) {
	var tests = []struct {
		i     uint64
		quint string
	}{
		{0, "babab-babab-babab-babab"},
		{41418391241418941, "bafig-filav-rahis-vofut"},
		{9489151893131231151, "mavub-gujiz-balaz-zuvoz"},
		{81518945431213, "babab-homoh-dozam-vupot"},
	}

	for _, test := range tests {
		if result := proquint.FromUint64(test.i); result != test.quint {
			t.Errorf("expected %s, got %s", test.quint, result)
		}
		result, err := proquint.ToUint64(test.quint)
		if err != nil {
			t.Fatal(err)
		}
		if result != test.i {
			t.Errorf("expected %d, got %d", test.i, result)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, malformed := range []string{
		"",
		"bab",
		"babax",   // 'x' is in neither table
		"ababa",   // vowel in consonant position
		"bbbbb",   // consonant in vowel position
		"babab-b", // short second group
	} {
		if _, err := proquint.ToUint16(malformed); err == nil && len(malformed) == 5 {
			t.Errorf("ToUint16(%q): expected error, got none", malformed)
		}
		if _, err := proquint.ToUint32(malformed); err == nil {
			t.Errorf("ToUint32(%q): expected error, got none", malformed)
		}
	}
}

func TestValid(t *testing.T) {
	var tests = []struct {
		quint    string
		expected bool
	}{
		{"lusab-babad", true},
		{"babab", true},
		{"babab-babab-babab-babab", true},
		{"lusab_babad", false},
		{"lusab-", false},
		{"", false},
		{"LUSAB-BABAD", false},
	}
	for _, test := range tests {
		if got := proquint.Valid(test.quint); got != test.expected {
			t.Errorf("Valid(%q): expected %t, got %t", test.quint, test.expected, got)
		}
	}
}
