package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultFetchRetries = 2
)

// FetchError décrit un échec de transport avec un message lisible.
type FetchError struct {
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPSource récupère les fichiers en HTTP. Les chemins /assets sont résolus
// sur AssetsURL, tous les autres sur APIURL.
type HTTPSource struct {
	APIURL    string
	AssetsURL string
	Client    *http.Client
	Timeout   time.Duration
	Retries   int

	// RetryInterval est le premier délai entre deux essais.
	RetryInterval time.Duration
}

func NewHTTPSource(apiURL, assetsURL string) *HTTPSource {
	return &HTTPSource{
		APIURL:    strings.TrimSuffix(apiURL, "/"),
		AssetsURL: strings.TrimSuffix(assetsURL, "/"),
		Client:    &http.Client{},
		Timeout:   DefaultFetchTimeout,
		Retries:   DefaultFetchRetries,

		RetryInterval: 500 * time.Millisecond,
	}
}

// URL retourne l'adresse complète utilisée pour un chemin.
func (s *HTTPSource) URL(path string) string {
	if strings.HasPrefix(path, AssetsPrefix) {
		return s.AssetsURL + path
	}
	return s.APIURL + path
}

// Fetch applique un délai global (Timeout) et ne réessaie que les erreurs
// réseau : une réponse HTTP >= 400 est définitive.
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	url := s.URL(path)
	operation := func() ([]byte, error) {
		return s.get(ctx, url)
	}

	b := backoff.NewExponentialBackOff()
	if s.RetryInterval > 0 {
		b.InitialInterval = s.RetryInterval
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(s.Retries)+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Printf("⚠️ GET %s échoué, nouvel essai dans %s: %v", path, next, err)
		}),
	)
	if err != nil {
		log.Printf("❌ GET %s échoué: %v", path, err)
		return nil, err
	}
	return body, nil
}

func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, backoff.Permanent(&FetchError{Message: messageForStatus(0), Err: ctxErr})
		}
		return nil, &FetchError{Message: messageForStatus(0), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Status: resp.StatusCode, Message: "Erreur de lecture de la réponse", Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, backoff.Permanent(&FetchError{
			Status:  resp.StatusCode,
			Message: messageForStatus(resp.StatusCode),
			Err:     errors.New(http.StatusText(resp.StatusCode)),
		})
	}
	return body, nil
}

func messageForStatus(status int) string {
	switch status {
	case 0:
		return "Impossible de se connecter au serveur"
	case http.StatusBadRequest:
		return "Requête invalide"
	case http.StatusUnauthorized:
		return "Authentification requise"
	case http.StatusForbidden:
		return "Accès refusé"
	case http.StatusNotFound:
		return "Ressource non trouvée"
	case http.StatusInternalServerError:
		return "Erreur serveur interne"
	case http.StatusServiceUnavailable:
		return "Service temporairement indisponible"
	}
	return fmt.Sprintf("Erreur %d", status)
}
