package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend persiste toutes les clés dans un seul objet JSON sur disque.
// Chaque écriture réécrit le fichier via un renommage atomique.
type FileBackend struct {
	path string
	mu   sync.Mutex
	data map[string]string
}

// NewFileBackend ouvre (ou crée) le fichier de stockage. Un fichier illisible
// est ignoré : on repart d'un stockage vide plutôt que d'échouer au démarrage.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, errors.New("chemin du stockage vide")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("impossible de créer le dossier de stockage: %w", err)
	}

	f := &FileBackend{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("lecture du stockage %s: %w", path, err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.data); err != nil {
			log.Printf("⚠️ Stockage %s corrompu, on repart d'un stockage vide: %v", path, err)
			f.data = make(map[string]string)
		}
	}
	return f, nil
}

func (f *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *FileBackend) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.data[key]
	f.data[key] = value
	if err := f.flush(); err != nil {
		if existed {
			f.data[key] = previous
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *FileBackend) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.data[key]
	if !existed {
		return nil
	}
	delete(f.data, key)
	if err := f.flush(); err != nil {
		f.data[key] = previous
		return err
	}
	return nil
}

func (f *FileBackend) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous := f.data
	f.data = make(map[string]string)
	if err := f.flush(); err != nil {
		f.data = previous
		return err
	}
	return nil
}

// flush doit être appelé avec f.mu verrouillé.
func (f *FileBackend) flush() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".storage-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.path)
}
