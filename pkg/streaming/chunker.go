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

// Package streaming carries run log bytes across process boundaries: fixed
// size chunking for gRPC streams, and a polling follower for logs that are
// still being appended to.
package streaming

// Chunker iterates over a byte slice in ChunkSize pieces:
//
//	chunker := streaming.NewChunker(payload)
//	for chunker.Next() {
//		send(chunker.Value())
//	}
//
// An empty source yields no chunks.
type Chunker struct {
	source     []byte
	start, end int
}

func NewChunker(source []byte) *Chunker {
	return &Chunker{source: source}
}

// Next advances to the next chunk, reporting whether one exists.
func (c *Chunker) Next() bool {
	if c.end >= len(c.source) {
		c.start = c.end
		return false
	}
	c.start = c.end
	c.end += ChunkSize
	if c.end > len(c.source) {
		c.end = len(c.source)
	}
	return true
}

// Value returns the current chunk. Valid only after a true Next.
func (c *Chunker) Value() []byte {
	return c.source[c.start:c.end]
}
