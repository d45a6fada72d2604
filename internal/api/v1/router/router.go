package router

import (
	"context"
	"net/http"
	"strings"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/llm"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Open DB connection pool
	dsn := cfg.DBConnectionString
	// In a development environment, we want to ensure that SSL is disabled for
	// local testing. In production, the connection string should be provided
	// with the correct SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create DB pool")
		return nil, nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize S3 client for recipe card images, when configured
	var imageSvc service.ImageService
	if cfg.S3URL != "" {
		s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
			awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
		)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load S3 config")
			return nil, nil, err
		}
		s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		})
		imageSvc = service.NewImageService(s3Client, cfg.S3Bucket, cfg.S3URL, logger)
	} else {
		logger.Warn().Msg("S3_URL not set, recipe card images disabled")
	}

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize the recipe synthesizer. Without a Gemini API key the
	// deterministic template synthesizer keeps the API usable.
	var synthesizer llm.Synthesizer
	if cfg.GeminiAPIKey != "" {
		synthesizer, err = llm.NewGeminiSynthesizer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Gemini client")
			return nil, nil, err
		}
		logger.Info().Str("model", cfg.GeminiModel).Msg("Gemini synthesizer initialized")
	} else {
		synthesizer = llm.NewTemplateSynthesizer()
		logger.Warn().Msg("GEMINI_API_KEY not set, using template synthesizer")
	}

	// 5. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(pool)
	recipeRepo := repository.NewRecipeRepo(pool)
	planRepo := repository.NewMealPlanRepo(pool)
	shoppingRepo := repository.NewShoppingRepo(pool)
	collectionRepo := repository.NewCollectionRepo(pool)
	pantryRepo := repository.NewPantryRepo(pool)
	historyRepo := repository.NewHistoryRepo(pool)

	userSvc := service.NewUserService(userRepo)
	quotaSvc := service.NewQuotaService(userRepo, cfg.FreeTierMonthlyLimit, logger)
	recipeSvc := service.NewRecipeService(recipeRepo, userRepo, quotaSvc, synthesizer, imageSvc, logger)
	planSvc := service.NewMealPlanService(planRepo, recipeRepo, logger)
	shoppingSvc := service.NewShoppingService(shoppingRepo, recipeRepo, logger)
	collectionSvc := service.NewCollectionService(collectionRepo, recipeRepo)
	pantrySvc := service.NewPantryService(pantryRepo)
	historySvc := service.NewHistoryService(historyRepo, recipeRepo)
	stripeSvc := service.NewStripeService(cfg, userRepo, logger)

	userHandler := handler.NewUserHandler(userSvc, validate)
	recipeHandler := handler.NewRecipeHandler(recipeSvc, validate)
	planHandler := handler.NewMealPlanHandler(planSvc, validate)
	shoppingHandler := handler.NewShoppingHandler(shoppingSvc, validate)
	collectionHandler := handler.NewCollectionHandler(collectionSvc, validate)
	pantryHandler := handler.NewPantryHandler(pantrySvc, validate)
	historyHandler := handler.NewHistoryHandler(historySvc, validate)
	subscriptionHandler := handler.NewSubscriptionHandler(stripeSvc, validate, logger)

	// 6. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	// 7. Create ServeMux router
	mux := http.NewServeMux()

	// Create a subrouter for API v1 with the /v1 prefix
	apiV1Mux := http.NewServeMux()
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	recipeHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	planHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	shoppingHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	collectionHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	pantryHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	historyHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	subscriptionHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// Stripe calls the webhook directly, so it bypasses auth. Signature
	// verification inside the handler stands in for it.
	apiV1Mux.HandleFunc("/subscriptions/webhook", stripeSvc.HandleWebhook)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), pool, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
