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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"sync"

	"github.com/riserctl/riserctl/pkg/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// DriveStore keeps archive objects as files in Google Drive, one file per
// key. Names are assumed unique; Write replaces any files already carrying
// the key's name.
type DriveStore struct {
	mu     sync.RWMutex
	client *drive.Service
	logger *log.Logger
}

var _ Store = &DriveStore{}

// NewDriveStore runs the OAuth dance if no cached token exists: credentials
// come from credentialsPath, the token is cached at tokenPath.
func NewDriveStore(logger *log.Logger, credentialsPath, tokenPath string) (*DriveStore, error) {
	client, err := driveClient(logger, credentialsPath, tokenPath)
	if err != nil {
		return nil, err
	}
	service, err := drive.New(client)
	if err != nil {
		return nil, fmt.Errorf("unable to construct Google Drive client: %v", err)
	}
	return &DriveStore{client: service, logger: logger}, nil
}

func (g *DriveStore) Read(key string) ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	id, err := g.fileID(key)
	if err != nil {
		return nil, err
	}
	file, err := g.client.Files.Get(id).Download()
	if err != nil {
		return nil, fmt.Errorf("unable to download %s: %v", key, err)
	}
	defer file.Body.Close()
	return ioutil.ReadAll(file.Body)
}

func (g *DriveStore) Write(key string, val []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	res, err := g.client.Files.List().Fields("files(name, id)").Q(nameQuery(key)).Do()
	if err != nil {
		return err
	}
	for _, f := range res.Files {
		if err := g.client.Files.Delete(f.Id).Do(); err != nil {
			return err
		}
	}

	r := bytes.NewReader(val)
	if _, err := g.client.Files.Create(&drive.File{Name: key}).Media(r).Do(); err != nil {
		return fmt.Errorf("unable to upload %s: %v", key, err)
	}
	return nil
}

func (g *DriveStore) Has(key string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, err := g.fileID(key)
	return err == nil
}

func (g *DriveStore) Erase(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.fileID(key)
	if err != nil {
		return err
	}
	return g.client.Files.Delete(id).Do()
}

func (g *DriveStore) Keys() ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	list, err := g.client.Files.List().Fields("files(name)").Do()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(list.Files))
	for _, file := range list.Files {
		keys = append(keys, file.Name)
	}
	return keys, nil
}

// fileID must be called with the mutex held.
func (g *DriveStore) fileID(key string) (string, error) {
	res, err := g.client.Files.List().Fields("files(name, id)").Q(nameQuery(key)).Do()
	if err != nil {
		return "", err
	}
	if len(res.Files) == 0 {
		return "", fmt.Errorf("no archived object named %s", key)
	}
	return res.Files[0].Id, nil
}

func nameQuery(key string) string {
	return "name = '" + key + "'"
}

func driveClient(logger *log.Logger, credentialsPath, tokenPath string) (*http.Client, error) {
	b, err := ioutil.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %v", err)
	}

	config, err := google.ConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %v", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(config)
		if err != nil {
			return nil, err
		}
		saveToken(logger, tokenPath, tok)
	}

	return config.Client(context.Background(), tok), nil
}

func tokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %v", err)
	}

	tok, err := config.Exchange(context.TODO(), authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %v", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(logger *log.Logger, path string, token *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		logger.Errorf("unable to cache oauth token: %v", err)
		return
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(token); err != nil {
		logger.Errorf("unable to cache oauth token: %v", err)
	}
}
