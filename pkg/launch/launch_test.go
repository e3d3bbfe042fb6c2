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

package launch

import (
	"reflect"
	"testing"
	"time"
)

func TestArgv(t *testing.T) {
	var testcases = []struct {
		name     string
		iv       Invocation
		expected []string
	}{
		{
			"enrich coding",
			NewEnrich(Coding, 24*time.Hour),
			[]string{"python3", "riser.py", "--target", "noncoding", "--duration", "24"},
		},
		{
			"enrich noncoding",
			NewEnrich(Noncoding, 24*time.Hour),
			[]string{"python3", "riser.py", "--target", "coding", "--duration", "24"},
		},
		{
			"enrich noncoding, one hour",
			NewEnrich(Noncoding, time.Hour),
			[]string{"python3", "riser.py", "--target", "coding", "--duration", "1"},
		},
		{
			"enrich fractional hours",
			NewEnrich(Coding, 90*time.Minute),
			[]string{"python3", "riser.py", "--target", "noncoding", "--duration", "1.5"},
		},
		{
			"reject all",
			NewRejectAll(),
			[]string{"python3", "reject_all.py"},
		},
	}

	for _, tc := range testcases {
		if argv := tc.iv.Argv(); !reflect.DeepEqual(argv, tc.expected) {
			t.Errorf("%s: expected argv %v, got %v", tc.name, tc.expected, argv)
		}
	}
}

func TestArgvShortFlags(t *testing.T) {
	iv := NewEnrich(Coding, 2*time.Hour)
	iv.ShortFlags = true

	expected := []string{"python3", "riser.py", "-t", "noncoding", "-d", "2"}
	if argv := iv.Argv(); !reflect.DeepEqual(argv, expected) {
		t.Errorf("expected argv %v, got %v", expected, argv)
	}
}

func TestRejectAllNeverGainsFlags(t *testing.T) {
	// A duration on a reject-all run arms the caller's watchdog only; the
	// control script takes no arguments.
	iv := NewRejectAll()
	iv.Duration = 3 * time.Hour
	iv.ShortFlags = true

	expected := []string{"python3", "reject_all.py"}
	if argv := iv.Argv(); !reflect.DeepEqual(argv, expected) {
		t.Errorf("expected argv %v, got %v", expected, argv)
	}
}

func TestEjectsComplement(t *testing.T) {
	if c := (Coding).Complement(); c != Noncoding {
		t.Errorf("expected complement of coding to be noncoding, got %s", c)
	}
	if c := (Noncoding).Complement(); c != Coding {
		t.Errorf("expected complement of noncoding to be coding, got %s", c)
	}

	iv := NewEnrich(Coding, time.Hour)
	if e := iv.Ejects(); e != Noncoding {
		t.Errorf("expected enrich-coding run to eject noncoding, got %s", e)
	}

	reject := NewRejectAll()
	if e := reject.Ejects(); e != "" {
		t.Errorf("expected reject-all run to eject no named class, got %q", e)
	}
}

func TestDefaultLogName(t *testing.T) {
	var testcases = []struct {
		iv       Invocation
		expected string
	}{
		{NewEnrich(Coding, time.Hour), "riser_coding_enrich.log"},
		{NewEnrich(Noncoding, time.Hour), "riser_noncoding_enrich.log"},
		{NewRejectAll(), "reject_all.log"},
	}
	for _, tc := range testcases {
		if name := tc.iv.DefaultLogName(); name != tc.expected {
			t.Errorf("expected log name %q, got %q", tc.expected, name)
		}
	}
}

func TestLogFileResolution(t *testing.T) {
	iv := NewEnrich(Coding, time.Hour)
	iv.WorkDir = "/data/seq"
	if p := iv.LogFile(); p != "/data/seq/riser_coding_enrich.log" {
		t.Errorf("unexpected log path %q", p)
	}

	iv.LogPath = "override.log"
	if p := iv.LogFile(); p != "/data/seq/override.log" {
		t.Errorf("unexpected log path %q", p)
	}

	iv.LogPath = "/elsewhere/run.log"
	if p := iv.LogFile(); p != "/elsewhere/run.log" {
		t.Errorf("unexpected log path %q", p)
	}
}

func TestFormatHours(t *testing.T) {
	var testcases = []struct {
		d        time.Duration
		expected string
	}{
		{time.Hour, "1"},
		{24 * time.Hour, "24"},
		{90 * time.Minute, "1.5"},
		{100 * time.Minute, "1.67"},
		{40 * time.Minute, "0.67"},
		{6 * time.Minute, "0.1"},
		{3599*time.Second + 990*time.Millisecond, "1"},
	}
	for _, tc := range testcases {
		if s := FormatHours(tc.d); s != tc.expected {
			t.Errorf("FormatHours(%v): expected %q, got %q", tc.d, tc.expected, s)
		}
	}
}

func TestParseDurationArg(t *testing.T) {
	var testcases = []struct {
		s        string
		expected time.Duration
	}{
		{"24", 24 * time.Hour},
		{"1.5", 90 * time.Minute},
		{"24h", 24 * time.Hour},
		{"90m", 90 * time.Minute},
		{"1h30m", 90 * time.Minute},
	}
	for _, tc := range testcases {
		d, err := ParseDurationArg(tc.s)
		if err != nil {
			t.Errorf("ParseDurationArg(%q): unexpected error: %v", tc.s, err)
			continue
		}
		if d != tc.expected {
			t.Errorf("ParseDurationArg(%q): expected %v, got %v", tc.s, tc.expected, d)
		}
	}

	// ParseFloat accepts non-finite spellings and magnitudes no Duration can
	// hold; all of them must be rejected, not converted.
	for _, malformed := range []string{
		"", "day", "-2", "-3h",
		"NaN", "nan", "Inf", "+Inf", "-Inf", "inf",
		"1e300", "9007199254740993e10",
	} {
		if _, err := ParseDurationArg(malformed); err == nil {
			t.Errorf("ParseDurationArg(%q): expected error, got none", malformed)
		}
	}
}

func TestDurationFlag(t *testing.T) {
	var v DurationFlag
	if v.Given {
		t.Fatal("zero DurationFlag must not report itself given")
	}
	if v.String() != "" {
		t.Fatalf("expected empty String for an unset flag, got %q", v.String())
	}
	if err := v.Set("1.5"); err != nil {
		t.Fatal(err)
	}
	if !v.Given || v.D != 90*time.Minute {
		t.Fatalf("expected 90m given, got %v (given: %t)", v.D, v.Given)
	}
	if err := v.Set("day"); err == nil {
		t.Fatal("expected error for a malformed duration")
	}
}

func TestParseClass(t *testing.T) {
	for _, tc := range []struct {
		s        string
		expected Class
	}{
		{"coding", Coding},
		{"noncoding", Noncoding},
		{"Coding", Coding},
		{"NONCODING", Noncoding},
	} {
		c, err := ParseClass(tc.s)
		if err != nil {
			t.Errorf("ParseClass(%q): unexpected error: %v", tc.s, err)
			continue
		}
		if c != tc.expected {
			t.Errorf("ParseClass(%q): expected %s, got %s", tc.s, tc.expected, c)
		}
	}

	if _, err := ParseClass("exon"); err == nil {
		t.Error("expected error for unknown class, got none")
	}
}

func TestValidate(t *testing.T) {
	{
		iv := NewEnrich(Coding, time.Hour)
		if err := iv.Validate(); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
	}
	{
		iv := NewEnrich(Coding, 30*time.Second)
		if err := iv.Validate(); err == nil {
			t.Error("expected sub-minute duration to be rejected")
		}
	}
	{
		iv := NewEnrich(Class("exon"), time.Hour)
		if err := iv.Validate(); err == nil {
			t.Error("expected unknown class to be rejected")
		}
	}
	{
		iv := NewRejectAll()
		if err := iv.Validate(); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
	}
	{
		iv := NewRejectAll()
		iv.Target = Coding
		if err := iv.Validate(); err == nil {
			t.Error("expected class on reject-all run to be rejected")
		}
	}
	{
		iv := NewEnrich(Coding, time.Hour)
		iv.Interpreter = ""
		if err := iv.Validate(); err == nil {
			t.Error("expected missing interpreter to be rejected")
		}
	}
}
