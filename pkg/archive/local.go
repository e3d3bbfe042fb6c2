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

package archive

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LocalStore keeps archive objects as files in a single directory.
type LocalStore struct {
	mu  sync.RWMutex
	dir string
}

var _ Store = &LocalStore{}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// keyPath rejects keys that would escape the archive directory.
func (l *LocalStore) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || key == "." || key == ".." {
		return "", fmt.Errorf("illegal archive key %q", key)
	}
	return filepath.Join(l.dir, key), nil
}

func (l *LocalStore) Read(key string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, err := l.keyPath(key)
	if err != nil {
		return nil, err
	}
	return ioutil.ReadFile(p)
}

func (l *LocalStore) Write(key string, val []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.keyPath(key)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(p, val, 0600)
}

func (l *LocalStore) Has(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, err := l.keyPath(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

func (l *LocalStore) Erase(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.keyPath(key)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (l *LocalStore) Keys() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries, err := ioutil.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		keys = append(keys, entry.Name())
	}
	return keys, nil
}
