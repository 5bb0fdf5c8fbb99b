package consumption

import (
	"errors"
	"strings"
	"sync"

	"storefront/internal/models"
	"storefront/internal/storage"
)

var ErrInvalidMode = errors.New("mode de consommation invalide")

// Service conserve le mode de consommation choisi (sur place, à emporter ou aucun).
type Service struct {
	mu    sync.Mutex
	store *storage.LocalStorage
	mode  models.ConsumptionMode
}

func NewService(store *storage.LocalStorage) *Service {
	s := &Service{store: store}
	s.mode = load(store)
	return s
}

func load(store *storage.LocalStorage) models.ConsumptionMode {
	if mode, ok := storage.GetItem[models.ConsumptionMode](store, storage.KeyConsumptionMode); ok && Valid(mode) {
		return mode
	}
	// Ancien format : chaîne brute non encodée en JSON
	raw, ok := store.GetRaw(storage.KeyConsumptionMode)
	if !ok {
		return models.ModeNone
	}
	mode := models.ConsumptionMode(strings.TrimSpace(raw))
	if Valid(mode) {
		return mode
	}
	return models.ModeNone
}

// Valid indique si mode est une valeur acceptée (y compris "aucun").
func Valid(mode models.ConsumptionMode) bool {
	switch mode {
	case models.ModeNone, models.ModeOnSite, models.ModeTakeaway:
		return true
	}
	return false
}

func (s *Service) Mode() models.ConsumptionMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode enregistre le mode ; ModeNone supprime la clé persistée.
func (s *Service) SetMode(mode models.ConsumptionMode) error {
	if !Valid(mode) {
		return ErrInvalidMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	if mode == models.ModeNone {
		s.store.RemoveItem(storage.KeyConsumptionMode)
		return nil
	}
	s.store.SetItem(storage.KeyConsumptionMode, mode)
	return nil
}

// Label retourne le libellé affiché pour le mode courant.
func (s *Service) Label() string {
	switch s.Mode() {
	case models.ModeOnSite:
		return "Sur place"
	case models.ModeTakeaway:
		return "À emporter"
	}
	return ""
}
