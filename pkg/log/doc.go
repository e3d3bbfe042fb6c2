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

// Package log implements modal execution logs. Every riserctl command wires it
// through the same set of flags:
//
//	$ riserctl <command> -h
//	  -log-dir string
//	        Write log files to the specified directory
//	  -suppress-stderr
//	        Suppress standard error logging
//	  -log-mode value
//	        Log mode for logs emitted globally (can be overridden using -log-filter)
//	  -log-filter value
//	        Comma-separated list of file.go:mode settings for file level logging
//	  -log-backtrace-at value
//	        Comma-separated list of file.go:N tracepoints; a logging statement at
//	        one emits a stack backtrace when executed
//
//	$ riserctl agent-server -log-mode debug \
//	                        -log-dir /var/log/riserctl \
//	                        -log-filter watchdog.go:debug,reaper.go:error \
//	                        -log-backtrace-at run.go:42
//
// The same hooks (SetGlobalLogMode, SetFileLogMode, SetTracePoint) can be
// flipped at runtime, so a long-lived daemon may expose them through an
// endpoint to reconfigure logging without a restart.
//
// Basic use:
//
//	logger := log.New()
//	logger.Info("hello, world")
//
// The logger is configured through variadic options: destination writer,
// header format, base path handling. Writers compose for synchronized,
// multiplexed, or size-rotated output:
//
//	writer := log.MultiWriter(os.Stderr,
//		log.LogRotationWriter("/var/log/riserctl", 50<<20 /* 50 MiB */))
//	writer = log.SynchronizedWriter(writer)
//
//	logf := log.Lmode | log.Ldate | log.Ltime | log.Lmicroseconds | log.Llongfile
//	logger := log.New(log.Writer(writer), log.Flags(logf), log.SkipBasePath())
package log
