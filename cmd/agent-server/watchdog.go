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

package agentserver

import (
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/riserctl/riserctl/pkg/log"
)

// expiry orders armed runs by when the watchdog must act on them.
type expiry struct {
	at time.Time
	id string
}

func (e expiry) Less(than btree.Item) bool {
	o := than.(expiry)
	if !e.at.Equal(o.at) {
		return e.at.Before(o.at)
	}
	return e.id < o.id
}

// watchdog ends runs that outlive their deadline by more than the slack.
// The tool winds down on its own when handed a duration, so the slack is
// generous; the watchdog only catches runs that fail to.
type watchdog struct {
	logger *log.Logger
	slack  time.Duration
	fire   func(id string)

	mu    sync.Mutex
	tree  *btree.BTree
	armed map[string]time.Time

	wake  chan struct{}
	stopc chan struct{}
	done  chan struct{}
}

func newWatchdog(logger *log.Logger, slack time.Duration, fire func(id string)) *watchdog {
	return &watchdog{
		logger: logger,
		slack:  slack,
		fire:   fire,
		tree:   btree.New(8),
		armed:  make(map[string]time.Time),
		wake:   make(chan struct{}, 1),
		stopc:  make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (w *watchdog) start() {
	go w.loop()
}

// halt stops the loop; armed runs are left untouched.
func (w *watchdog) halt() {
	close(w.stopc)
	<-w.done
}

// arm schedules the run for expiry at deadline+slack. Re-arming an id moves
// it. A zero deadline means the run is unbounded and is ignored.
func (w *watchdog) arm(id string, deadline time.Time) {
	if deadline.IsZero() {
		return
	}
	w.mu.Lock()
	if prev, ok := w.armed[id]; ok {
		w.tree.Delete(expiry{at: prev, id: id})
	}
	w.armed[id] = deadline
	w.tree.ReplaceOrInsert(expiry{at: deadline, id: id})
	w.mu.Unlock()
	w.kick()
}

func (w *watchdog) disarm(id string) {
	w.mu.Lock()
	if at, ok := w.armed[id]; ok {
		delete(w.armed, id)
		w.tree.Delete(expiry{at: at, id: id})
	}
	w.mu.Unlock()
	w.kick()
}

func (w *watchdog) kick() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *watchdog) loop() {
	defer close(w.done)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		w.mu.Lock()
		now := time.Now()
		for w.tree.Len() > 0 {
			next := w.tree.Min().(expiry)
			if next.at.Add(w.slack).After(now) {
				break
			}
			w.tree.DeleteMin()
			delete(w.armed, next.id)

			// Fire without the mutex held; the callback stops processes and
			// touches the registry.
			w.mu.Unlock()
			w.fire(next.id)
			w.mu.Lock()
			now = time.Now()
		}

		wait := time.Hour
		if w.tree.Len() > 0 {
			next := w.tree.Min().(expiry)
			wait = next.at.Add(w.slack).Sub(now)
		}
		w.mu.Unlock()

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-w.stopc:
			return
		case <-w.wake:
		case <-timer.C:
		}
	}
}
