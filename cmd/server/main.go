package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"storefront/assets"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/consumption"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/routes"
	"storefront/internal/services"
	"storefront/internal/storage"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conns := &connections{cfg: cfg}
	defer conns.Close()

	backend, err := openStorage(ctx, cfg, conns)
	if err != nil {
		log.Fatalf("❌ Stockage local indisponible: %v", err)
	}
	store := storage.NewLocalStorage(backend)

	assetsFS, err := servedAssets(cfg)
	if err != nil {
		log.Fatalf("❌ Dossier d'assets invalide: %v", err)
	}

	source, images, err := catalogSource(ctx, cfg, assetsFS, conns)
	if err != nil {
		log.Fatalf("❌ Source du catalogue indisponible: %v", err)
	}

	// Sans auth.json, aucun compte statique : seuls les comptes créés localement existent
	authData, err := auth.FetchAuthData(ctx, source)
	if err != nil {
		log.Printf("❌ Données d'authentification indisponibles: %v", err)
		authData = models.AuthData{}
	}
	authEngine := auth.NewEngine(authData, store)

	cat := catalog.New(source)
	go func() {
		if err := <-cat.Start(ctx); err != nil {
			log.Printf("⚠️ Catalogue chargé partiellement: %v", err)
		}
	}()

	cartEngine := cart.NewEngine(store, authEngine)
	// La remise dépend de la session : le panier est republié à chaque connexion/déconnexion
	authEngine.Subscribe(func(bool) { cartEngine.Notify() })

	h := handlers.New(cat, cartEngine, authEngine, consumption.NewService(store), cfg.CORSOrigins)
	h.Images = images

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	routes.RegisterRoutes(r, h, assetsFS)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("🚀 Serveur storefront lancé sur le port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Erreur serveur: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Arrêt du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Arrêt forcé: %v", err)
	}
	log.Println("✅ Serveur arrêté")
}

// connections ouvre le client Redis à la demande, une seule fois.
type connections struct {
	cfg   config.Config
	redis *redis.Client
}

func (c *connections) Redis(ctx context.Context) (*redis.Client, error) {
	if c.redis != nil {
		return c.redis, nil
	}
	client, err := database.ConnectRedis(ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	c.redis = client
	return client, nil
}

func (c *connections) Close() {
	if c.redis != nil {
		c.redis.Close()
	}
}

// openStorage choisit le support du stockage local (STORAGE_BACKEND).
func openStorage(ctx context.Context, cfg config.Config, conns *connections) (storage.Backend, error) {
	switch cfg.StorageBackend {
	case "memory":
		log.Println("⚠️ Stockage en mémoire : rien ne survit au redémarrage")
		return storage.NewMemoryBackend(), nil
	case "file", "":
		backend, err := storage.NewFileBackend(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Stockage local :", cfg.StoragePath)
		return backend, nil
	case "redis":
		client, err := conns.Redis(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewRedisBackend(client, cfg.RedisPrefix), nil
	}
	return nil, fmt.Errorf("STORAGE_BACKEND inconnu: %q", cfg.StorageBackend)
}

// servedAssets retourne l'arborescence servie sous /assets : ASSETS_DIR si
// renseigné, sinon les données embarquées.
func servedAssets(cfg config.Config) (fs.FS, error) {
	if cfg.AssetsDir == "" {
		return assets.FS(), nil
	}
	info, err := os.Stat(cfg.AssetsDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s n'est pas un dossier", cfg.AssetsDir)
	}
	return os.DirFS(cfg.AssetsDir), nil
}

// catalogSource choisit d'où viennent les fichiers de données (CATALOG_SOURCE)
// et comment les images sont adressées. Les sources distantes passent par le
// cache Redis si CATALOG_CACHE_TTL est renseigné.
func catalogSource(ctx context.Context, cfg config.Config, assetsFS fs.FS, conns *connections) (catalog.Source, services.ImageURLs, error) {
	var (
		source catalog.Source
		images services.ImageURLs = services.StaticImages{}
	)

	switch cfg.CatalogSource {
	case "embed", "dir", "":
		return catalog.NewFSSource(assetsFS), images, nil
	case "http":
		src := catalog.NewHTTPSource(cfg.APIURL, cfg.AssetsURL)
		src.Timeout = cfg.FetchTimeout
		src.Retries = cfg.FetchRetries
		log.Println("✅ Catalogue servi par", cfg.AssetsURL)
		source = src
	case "minio":
		client, err := database.ConnectMinIO(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		source = catalog.NewMinioSource(client, cfg.MinIOBucket, cfg.MinIOPrefix)
		images = services.NewMinioImages(client, cfg.MinIOBucket, cfg.MinIOPrefix, cfg.ImageURLTTL)
	default:
		return nil, nil, fmt.Errorf("CATALOG_SOURCE inconnu: %q", cfg.CatalogSource)
	}

	if cfg.CatalogCacheTTL > 0 {
		client, err := conns.Redis(ctx)
		if err != nil {
			log.Printf("⚠️ Cache catalogue désactivé: %v", err)
			return source, images, nil
		}
		source = cache.NewSource(client, source, cache.DefaultPrefix, cfg.CatalogCacheTTL)
		log.Println("✅ Cache catalogue Redis actif :", cfg.CatalogCacheTTL)
	}
	return source, images, nil
}
