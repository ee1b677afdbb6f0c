package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/penguin-maze/api"
	gameapi "github.com/beka-birhanu/penguin-maze/api/game"
	api_i "github.com/beka-birhanu/penguin-maze/api/i"
	"github.com/beka-birhanu/penguin-maze/api/identity"
	"github.com/beka-birhanu/penguin-maze/config"
	"github.com/beka-birhanu/penguin-maze/infrastruture/levelstore"
	logger "github.com/beka-birhanu/penguin-maze/infrastruture/log"
	"github.com/beka-birhanu/penguin-maze/infrastruture/repo"
	"github.com/beka-birhanu/penguin-maze/infrastruture/token"
	"github.com/beka-birhanu/penguin-maze/service"
	"github.com/beka-birhanu/penguin-maze/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	levelStoreRedis = "redis"
	levelStoreMongo = "mongo"
	startupTimeout  = 60 * time.Second
)

// Server dependencies, wired by the init functions below in order.
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	playerRepo         *repo.PlayerRepo
	levelStore         i.LevelStore
	gameSessionManager i.GameSessionManager
	gameController     api_i.Controller
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	authController     api_i.Controller
	router             *api.Router
	appLogger          *logger.Logger
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the game HTTP server",
		Long: `Run the REST and websocket game server.

Configuration is read from the environment or a .env file in the working
directory: REST_PORT, DB_HOST, DB_PORT, DB_USER, DB_PASS, DB_NAME, JWT_SECRET and
JWT_ISSUER are required. Set LEVEL_STORE=redis with REDIS_ADDR to keep player
levels in redis instead of mongo.`,
		RunE: runServe,
	})
}

// mustLogger creates a named logger or exits.
func mustLogger(name, color string) *logger.Logger {
	l, err := logger.New(name, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", name, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initPlayerRepo(ctx context.Context, client *mongo.Client) {
	playerRepo = repo.NewPlayerRepo(client, config.Envs.DBName, "players")
	if err := playerRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating player indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Player repository initialized")
}

func initLevelStore(ctx context.Context) {
	switch config.Envs.LevelStore {
	case levelStoreMongo:
		levelStore = playerRepo
	case levelStoreRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Envs.RedisAddr,
			Password: config.Envs.RedisPassword,
			DB:       config.Envs.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
			os.Exit(1)
		}

		store, err := levelstore.NewRedisLevelStore(redisClient, config.Envs.LevelTTLSeconds)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Creating redis level store: %v", err))
			os.Exit(1)
		}
		levelStore = store
	default:
		appLogger.Error(fmt.Sprintf("Unknown level store %q, want %q or %q", config.Envs.LevelStore, levelStoreRedis, levelStoreMongo))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Level store initialized (%s)", config.Envs.LevelStore))
}

func initSessionManager() {
	var err error
	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		LevelStore: levelStore,
		Logger:     mustLogger("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initGameController() {
	gameController = gameapi.NewController(gameSessionManager)
	appLogger.Info("Game controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(service.AuthConfig{
		PlayerRepo: playerRepo,
		Tokenizer:  jwtTokenizer,
		Logger:     mustLogger("AUTH", config.ColorPurple),
		LevelStore: levelStore,
		TokenTTL:   time.Duration(config.Envs.TokenTTLHours) * time.Hour,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, gameController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func runServe(cmd *cobra.Command, args []string) error {
	config.Load()
	appLogger = mustLogger("APP", config.ColorGreen)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initPlayerRepo(ctx, mongoClient)
	initLevelStore(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initSessionManager()
	initGameController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		return err
	}
	return nil
}
