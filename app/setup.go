package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/api"
	"github.com/lalankumar17/Automated-Examination-Management-System/config"
	"github.com/lalankumar17/Automated-Examination-Management-System/database"
	"github.com/lalankumar17/Automated-Examination-Management-System/router"
	"github.com/lalankumar17/Automated-Examination-Management-System/services"
	"github.com/lalankumar17/Automated-Examination-Management-System/services/cron"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/cache"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/middleware"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/storage"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	policy, err := services.PolicyFromConfig(getEnv)
	if err != nil {
		return err
	}

	store, err := openStorage(getEnv)
	if err != nil {
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Failed to initialize database tables")
		return err
	}

	// In-memory storage starts empty, give it the starter subject catalog
	if _, ok := store.(*database.MemoryStore); ok {
		if err := database.RunSeeds(context.Background(), store.TxManager()); err != nil {
			log.Printf("Warning: Failed to seed subjects: %v", err)
		}
	}

	// Redis is optional; without it scope locks are process local
	var locker services.DistributedLocker
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Scope locks will be process local.", err)
		} else {
			locker = redisCache
		}
	}

	archiver := services.NewNoopArchiver()
	if getEnv.SpacesEnabled() {
		spacesClient, err := storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: getEnv.DO_SPACES_KEY,
			SecretKey: getEnv.DO_SPACES_SECRET,
			Bucket:    getEnv.DO_SPACES_BUCKET,
			Region:    getEnv.DO_SPACES_REGION,
			Endpoint:  getEnv.DO_SPACES_ENDPOINT,
			CDNURL:    getEnv.DO_SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: %v. Published timetables will not be archived.", err)
		} else {
			archiver = services.NewSpacesArchiver(spacesClient)
		}
	}

	scopeLocker := services.NewScopeLocker(policy.Departments, locker,
		time.Duration(getEnv.SCHEDULE_LOCK_TIMEOUT_SECONDS)*time.Second)
	examService := services.NewExamService(store.TxManager(), policy, scopeLocker, archiver)
	examService.SetHealthCheck(store.HealthCheck)
	subjectService := services.NewSubjectService(store.TxManager(), policy)

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store.GetDB(), examService, getEnv.AUDIT_RETENTION_DAYS)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Printf("Warning: Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	// Defer Closing DB, Redis and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   time.Duration(getEnv.RATE_LIMIT_WINDOW) * time.Second,
	})

	router.SetupRoutes(app, router.Services{
		Store:    store,
		Exams:    examService,
		Subjects: subjectService,
	})

	return server.Run()
}

func openStorage(env *config.EnviornmentVariable) (database.Storage, error) {
	switch strings.ToLower(env.DB_DRIVER) {
	case "memory":
		return database.NewMemoryStore(), nil
	case "", "postgres":
		store, err := database.StartGORM(env)
		if err != nil {
			log.Println("Check whether the Postgres is running or not")
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DB_DRIVER)
	}
}
