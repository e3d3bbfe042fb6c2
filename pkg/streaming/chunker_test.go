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

package streaming

import (
	"bytes"
	"testing"
)

func TestChunker(t *testing.T) {
	parts := 16
	extra := []byte("efghijk")
	chunk := bytes.Repeat([]byte("abcd"), ChunkSize/4)
	source := make([]byte, 0, len(chunk)*parts+len(extra))
	for i := 0; i < parts; i++ {
		source = append(source, chunk...)
	}
	source = append(source, extra...)

	chunker := NewChunker(source)
	for i := 0; i < parts; i++ {
		if !chunker.Next() {
			t.Fatal("expected another chunk")
		}
		if !bytes.Equal(chunker.Value(), chunk) {
			t.Error("expected a full-size chunk")
		}
	}
	if !chunker.Next() {
		t.Fatal("expected the trailing chunk")
	}
	if !bytes.Equal(chunker.Value(), extra) {
		t.Errorf("expected trailing chunk %s, got %s", extra, chunker.Value())
	}
	if chunker.Next() {
		t.Error("expected iteration to be done")
	}
}

func TestChunkerEmptySource(t *testing.T) {
	chunker := NewChunker(nil)
	if chunker.Next() {
		t.Error("expected no chunks for an empty source")
	}
}
