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

// Package launch models invocations of the read-enrichment tool. The tool's
// command-line contract is the single interface riserctl has to it, so the
// argv built here is treated as load-bearing: enrichment runs receive exactly
// --target and --duration (or their -t/-d short forms), and reject-all runs
// receive no arguments at all.
package launch

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Class names a sequence class the tool can discriminate.
type Class string

const (
	Coding    Class = "coding"
	Noncoding Class = "noncoding"
)

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	return c == Coding || c == Noncoding
}

// Complement returns the other class. The tool's --target flag names the class
// to eject, so a run enriching for one class passes the complement.
func (c Class) Complement() Class {
	switch c {
	case Coding:
		return Noncoding
	case Noncoding:
		return Coding
	}
	return c
}

// ParseClass parses a user-supplied class name.
func ParseClass(s string) (Class, error) {
	c := Class(strings.ToLower(s))
	if !c.Valid() {
		return "", fmt.Errorf("unknown sequence class %q, expected %q or %q", s, Coding, Noncoding)
	}
	return c, nil
}

// Mode names a run mode.
type Mode string

const (
	// Enrich runs the classifying tool, ejecting reads of the complement
	// class so the flow cell spends its time on the class of interest.
	Enrich Mode = "enrich"
	// RejectAll runs the control tool, which ejects every read regardless of
	// class. Used to measure ejection overhead against ordinary sequencing.
	RejectAll Mode = "reject-all"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Enrich || m == RejectAll
}

// Tool defaults. The scripts are resolved relative to the working directory
// unless configured otherwise.
const (
	DefaultInterpreter = "python3"
	EnrichScript       = "riser.py"
	RejectScript       = "reject_all.py"
)

// MinDuration is the shortest accepted run duration. The tool takes durations
// in hours; anything under a minute is a typo.
const MinDuration = time.Minute

// An Invocation describes one run of the tool, ready to be turned into argv.
type Invocation struct {
	Mode Mode

	// Target is the class the run enriches for; the tool receives its
	// complement as the class to eject. Set only for Enrich runs.
	Target Class

	// Duration bounds the run. Required for Enrich runs, where it is handed
	// to the tool; optional for RejectAll runs, where it only arms the
	// caller's watchdog and the tool itself receives nothing.
	Duration time.Duration

	Interpreter string
	Script      string
	WorkDir     string

	// ShortFlags selects the tool's -t/-d spellings over --target/--duration.
	ShortFlags bool

	// LogPath overrides the default log file location. Relative paths are
	// kept relative to WorkDir.
	LogPath string
}

// NewEnrich returns an Invocation enriching for the given class with the
// default interpreter and script.
func NewEnrich(target Class, duration time.Duration) Invocation {
	return Invocation{
		Mode:        Enrich,
		Target:      target,
		Duration:    duration,
		Interpreter: DefaultInterpreter,
		Script:      EnrichScript,
	}
}

// NewRejectAll returns an Invocation for the reject-everything control with
// the default interpreter and script.
func NewRejectAll() Invocation {
	return Invocation{
		Mode:        RejectAll,
		Interpreter: DefaultInterpreter,
		Script:      RejectScript,
	}
}

// Validate checks the invocation for internal consistency.
func (iv *Invocation) Validate() error {
	if !iv.Mode.Valid() {
		return fmt.Errorf("unknown run mode %q", iv.Mode)
	}
	if iv.Interpreter == "" {
		return errors.New("no interpreter given")
	}
	if iv.Script == "" {
		return errors.New("no tool script given")
	}

	switch iv.Mode {
	case Enrich:
		if !iv.Target.Valid() {
			return fmt.Errorf("unknown sequence class %q", iv.Target)
		}
		if iv.Duration < MinDuration {
			return fmt.Errorf("duration %v is shorter than the %v minimum", iv.Duration, MinDuration)
		}
	case RejectAll:
		if iv.Target != "" {
			return fmt.Errorf("reject-all runs take no sequence class, got %q", iv.Target)
		}
		if iv.Duration != 0 && iv.Duration < MinDuration {
			return fmt.Errorf("duration %v is shorter than the %v minimum", iv.Duration, MinDuration)
		}
	}
	return nil
}

// Ejects returns the class passed to the tool as its --target: the complement
// of the enriched class. Empty for RejectAll runs.
func (iv *Invocation) Ejects() Class {
	if iv.Mode != Enrich {
		return ""
	}
	return iv.Target.Complement()
}

// Argv builds the child's complete argument vector.
//
//	enrich coding:    python3 riser.py --target noncoding --duration 24
//	enrich noncoding: python3 riser.py --target coding --duration 24
//	reject-all:       python3 reject_all.py
func (iv *Invocation) Argv() []string {
	argv := []string{iv.Interpreter, iv.Script}
	if iv.Mode != Enrich {
		return argv
	}

	target, duration := "--target", "--duration"
	if iv.ShortFlags {
		target, duration = "-t", "-d"
	}
	argv = append(argv, target, string(iv.Ejects()))
	argv = append(argv, duration, FormatHours(iv.Duration))
	return argv
}

// String renders the invocation as a shell-style command line.
func (iv *Invocation) String() string {
	return strings.Join(iv.Argv(), " ")
}

// DefaultLogName returns the conventional log file name for the run:
// riser_<class>_enrich.log for enrichment, reject_all.log for the control.
func (iv *Invocation) DefaultLogName() string {
	if iv.Mode == RejectAll {
		return "reject_all.log"
	}
	return fmt.Sprintf("riser_%s_enrich.log", iv.Target)
}

// LogFile resolves the run's log path: LogPath if set, otherwise the default
// name, either way anchored at WorkDir when relative.
func (iv *Invocation) LogFile() string {
	p := iv.LogPath
	if p == "" {
		p = iv.DefaultLogName()
	}
	if !filepath.IsAbs(p) && iv.WorkDir != "" {
		p = filepath.Join(iv.WorkDir, p)
	}
	return p
}

// FormatHours renders d in hours the way the tool expects: whole hours as
// integers, fractions trimmed to at most two decimal places.
//
//	24h -> "24", 90m -> "1.5", 100m -> "1.67"
func FormatHours(d time.Duration) string {
	hours := math.Round(d.Hours()*100) / 100
	if hours == math.Trunc(hours) {
		return strconv.Itoa(int(hours))
	}
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// DurationFlag is a flag.Value accepting the duration spellings of
// ParseDurationArg. Given distinguishes an absent flag from a zero one.
type DurationFlag struct {
	D     time.Duration
	Given bool
}

func (v *DurationFlag) String() string {
	if !v.Given {
		return ""
	}
	return v.D.String()
}

func (v *DurationFlag) Set(value string) error {
	d, err := ParseDurationArg(value)
	if err != nil {
		return err
	}
	v.D, v.Given = d, true
	return nil
}

// ParseDurationArg parses a user-supplied duration: Go syntax ("24h", "90m")
// or a bare number of hours ("24", "1.5").
func ParseDurationArg(s string) (time.Duration, error) {
	if hours, err := strconv.ParseFloat(s, 64); err == nil {
		// ParseFloat happily yields NaN and ±Inf, and finite values can
		// still overflow the Duration conversion.
		if math.IsNaN(hours) || math.IsInf(hours, 0) {
			return 0, fmt.Errorf("malformed duration %q, expected hours or Go duration syntax", s)
		}
		if hours < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		if hours >= float64(math.MaxInt64)/float64(time.Hour) {
			return 0, fmt.Errorf("duration %q is out of range", s)
		}
		return time.Duration(hours * float64(time.Hour)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("malformed duration %q, expected hours or Go duration syntax", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}
