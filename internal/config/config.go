package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config regroupe les réglages du serveur, lus depuis l'environnement.
type Config struct {
	Port string

	// Catalogue
	AssetsDir     string
	AssetsURL     string // origine des chemins /assets pour la source "http"
	APIURL        string
	CatalogSource string // "embed", "dir", "http" ou "minio"
	FetchTimeout  time.Duration
	FetchRetries  int

	// CatalogCacheTTL > 0 active le cache Redis devant les sources distantes
	CatalogCacheTTL time.Duration

	// Stockage local
	StorageBackend string // "file", "memory" ou "redis"
	StoragePath    string

	RedisHost     string
	RedisPassword string
	RedisPrefix   string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOPrefix    string
	MinIOUseSSL    bool
	ImageURLTTL    time.Duration

	CORSOrigins []string
}

// Load charge le fichier .env s'il existe puis lit la configuration.
func Load() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
	return FromEnv()
}

// FromEnv lit la configuration sans toucher au fichier .env.
func FromEnv() Config {
	apiURL := getEnv("API_URL", "http://localhost:8080")
	return Config{
		Port: getEnv("PORT", "8080"),

		AssetsDir:     getEnv("ASSETS_DIR", ""),
		AssetsURL:     getEnv("ASSETS_URL", apiURL),
		APIURL:        apiURL,
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", "embed")),
		FetchTimeout:  getDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchRetries:  getInt("FETCH_RETRIES", 2),

		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", 0),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "file")),
		StoragePath:    getEnv("STORAGE_PATH", "data/local_storage.json"),

		RedisHost:     getEnv("REDIS_HOST", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisPrefix:   getEnv("REDIS_PREFIX", "storefront:"),

		MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "storefront"),
		MinIOPrefix:    os.Getenv("MINIO_PREFIX"),
		MinIOUseSSL:    strings.ToLower(os.Getenv("MINIO_USE_SSL")) == "true",
		ImageURLTTL:    getDuration("IMAGE_URL_TTL", time.Hour),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:4200")),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
