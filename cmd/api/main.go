package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/baanruam/dormhub/occupancy-service/internal/adapters/cache"
	"github.com/baanruam/dormhub/occupancy-service/internal/adapters/handler"
	"github.com/baanruam/dormhub/occupancy-service/internal/adapters/middleware"
	"github.com/baanruam/dormhub/occupancy-service/internal/adapters/repository"
	"github.com/baanruam/dormhub/occupancy-service/internal/config"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/services"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	roomRepo := repository.NewSQLRoomRepository(db)
	tenantRepo := repository.NewSQLTenantRepository(db)
	occupancyRepo := repository.NewSQLOccupancyRepository(db, cfg.EventType)
	roomCache := cache.NewRedisRoomListCache(redisClient)

	allocationService := services.NewAllocationService(roomRepo, tenantRepo, occupancyRepo, roomCache)
	statusService := services.NewRoomStatusService(roomRepo, roomCache)
	roomService := services.NewRoomService(roomRepo, occupancyRepo, roomCache)
	tenantService := services.NewTenantService(tenantRepo, roomRepo, occupancyRepo, roomCache)
	occupancyService := services.NewOccupancyService(roomRepo, occupancyRepo)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey)
	cors := middleware.CORSMiddleware(cfg.AllowedOrigins)

	roomHandler := handler.NewRoomHandler(roomService, statusService, occupancyService)
	tenantHandler := handler.NewTenantHandler(allocationService, tenantService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	staff := []string{"admin", "staff"}
	adminOnly := []string{"admin"}

	protected := func(path string, roles []string, h http.HandlerFunc) http.Handler {
		return cors(middleware.Instrument(path, authMiddleware.RequireRole(roles, h)))
	}

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.HandleFunc("/health/live", healthHandler.Live)

	mux.Handle("/metrics", promhttp.Handler())

	// Browser clients preflight every Authorization-bearing request, and an
	// OPTIONS request matches none of the method-qualified patterns below.
	preflight := middleware.Preflight(cors)
	for _, path := range []string{
		"/rooms", "/rooms/status", "/rooms/occupancy",
		"/tenants", "/tenants/admit", "/tenants/checkout",
		"/tenants/deactivate", "/tenants/contract",
	} {
		mux.Handle("OPTIONS "+path, preflight)
	}

	// Room endpoints
	mux.Handle("GET /rooms", protected("/rooms", staff, roomHandler.List))
	mux.Handle("POST /rooms", protected("/rooms", adminOnly, roomHandler.Create))
	mux.Handle("POST /rooms/status", protected("/rooms/status", staff, roomHandler.ChangeStatus))
	mux.Handle("GET /rooms/occupancy", protected("/rooms/occupancy", staff, roomHandler.Occupancy))

	// Tenant endpoints
	mux.Handle("GET /tenants", protected("/tenants", staff, tenantHandler.List))
	mux.Handle("POST /tenants/admit", protected("/tenants/admit", staff, tenantHandler.Admit))
	mux.Handle("POST /tenants/checkout", protected("/tenants/checkout", staff, tenantHandler.Checkout))
	mux.Handle("POST /tenants/deactivate", protected("/tenants/deactivate", adminOnly, tenantHandler.Deactivate))
	mux.Handle("POST /tenants/contract", protected("/tenants/contract", staff, tenantHandler.AttachContract))

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
