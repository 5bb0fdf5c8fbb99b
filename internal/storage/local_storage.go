package storage

import (
	"context"
	"encoding/json"
	"log"
)

// LocalStorage sérialise les valeurs en JSON au-dessus d'un Backend.
// Aucune erreur ne sort d'ici : une lecture ratée vaut "absent", une écriture
// ratée est journalisée puis ignorée (l'état en mémoire reste la référence).
type LocalStorage struct {
	backend Backend
}

func NewLocalStorage(backend Backend) *LocalStorage {
	return &LocalStorage{backend: backend}
}

// SetItem sauvegarde une valeur sérialisée en JSON.
func (s *LocalStorage) SetItem(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("❌ Erreur lors de la sérialisation pour le stockage (%s): %v", key, err)
		return
	}
	s.SetRaw(key, string(data))
}

// GetItem récupère et désérialise une valeur. ok=false si la clé est absente,
// vide, vaut null ou n'est pas du JSON valide pour T.
func GetItem[T any](s *LocalStorage, key string) (T, bool) {
	var value T

	raw, ok := s.GetRaw(key)
	if !ok || raw == "" || raw == "null" {
		return value, false
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		log.Printf("❌ Erreur lors de la lecture du stockage (%s): %v", key, err)
		var zero T
		return zero, false
	}
	return value, true
}

// GetRaw retourne la chaîne stockée telle quelle.
func (s *LocalStorage) GetRaw(key string) (string, bool) {
	raw, ok, err := s.backend.Get(context.Background(), key)
	if err != nil {
		log.Printf("❌ Erreur lors de la lecture du stockage (%s): %v", key, err)
		return "", false
	}
	return raw, ok
}

func (s *LocalStorage) SetRaw(key, value string) {
	if err := s.backend.Set(context.Background(), key, value); err != nil {
		log.Printf("❌ Erreur lors de la sauvegarde dans le stockage (%s): %v", key, err)
	}
}

func (s *LocalStorage) RemoveItem(key string) {
	if err := s.backend.Delete(context.Background(), key); err != nil {
		log.Printf("❌ Erreur lors de la suppression du stockage (%s): %v", key, err)
	}
}

// Clear vide complètement le stockage.
func (s *LocalStorage) Clear() {
	if err := s.backend.Clear(context.Background()); err != nil {
		log.Printf("❌ Erreur lors du vidage du stockage: %v", err)
	}
}

func (s *LocalStorage) HasItem(key string) bool {
	_, ok := s.GetRaw(key)
	return ok
}
