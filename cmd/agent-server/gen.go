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
	"crypto/rand"
	"encoding/binary"
	"strings"

	"github.com/riserctl/riserctl/pkg/proquint"
	"github.com/riserctl/riserctl/pkg/runlog"
	"golang.org/x/crypto/bcrypt"
)

// GenerateToken creates a fresh agent access token, stores its bcrypt hash in
// the registry, and returns the token itself. The plaintext is never stored;
// callers must show it to the operator immediately or lose it.
//
// Tokens carry 128 bits of entropy, proquint-encoded into eight groups so
// they survive being read over the phone: e.g.
// lusab-babad-sanod-mabiv-fasuz-ruvah-gutuk-disab.
func GenerateToken(store *runlog.Store) (string, error) {
	var entropy [16]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		return "", err
	}

	groups := make([]string, 0, 8)
	for i := 0; i < len(entropy); i += 2 {
		groups = append(groups,
			proquint.FromUint16(binary.BigEndian.Uint16(entropy[i:i+2])))
	}
	token := strings.Join(groups, "-")

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	if err := store.SetTokenHash(hash); err != nil {
		return "", err
	}
	return token, nil
}
