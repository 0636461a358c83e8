package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/advisor"
	googleauth "advisor-backend/internal/auth"
	"advisor-backend/internal/mail"
	"advisor-backend/internal/market"
	"advisor-backend/internal/passwordreset"
	"advisor-backend/internal/queue"
	"advisor-backend/internal/services/health"
	"advisor-backend/internal/shared/config"
	"advisor-backend/internal/shared/server"
	"advisor-backend/internal/shared/storage/db"
	"advisor-backend/internal/shared/storage/object"
	localstore "advisor-backend/internal/shared/storage/object/local"
	s3store "advisor-backend/internal/shared/storage/object/s3"
	"advisor-backend/internal/social"
	"advisor-backend/internal/users"
)

// App holds shared dependencies. Router is wired last, after every
// handler exists.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	Mailer mail.Mailer

	UsersRepo    users.Repo
	ResetRepo    passwordreset.Repo
	FriendsRepo  social.FriendsRepo
	MessagesRepo social.MessagesRepo

	MarketService  *market.Service
	Refresher      *market.Refresher
	AdvisorService *advisor.Service
	UsersService   *users.Service
	ResetService   *passwordreset.Service
	SocialService  *social.Service
	HealthService  *health.Service

	MarketHandler  *market.Handler
	AdvisorHandler *advisor.Handler
	UsersHandler   *users.Handler
	ResetHandler   *passwordreset.Handler
	SocialHandler  *social.Handler
	GoogleAuth     *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		Mailer: mail.NewLogMailer(cfg.ResetURLBase),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Health:         app.HealthService,
		MarketHandler:  app.MarketHandler,
		AdvisorHandler: app.AdvisorHandler,
		UsersHandler:   app.UsersHandler,
		ResetHandler:   app.ResetHandler,
		SocialHandler:  app.SocialHandler,
		GoogleAuth:     app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return queue.NewMemoryClient(), nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var userRepo users.Repo
	var resetRepo passwordreset.Repo
	var friendsRepo social.FriendsRepo
	var messagesRepo social.MessagesRepo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resetRepo = &passwordreset.PGRepo{DB: app.DB}
		friendsRepo = &social.PGFriendsRepo{DB: app.DB}
		messagesRepo = &social.PGMessagesRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resetRepo = passwordreset.NewMemoryRepo()
		friendsRepo = social.NewMemoryFriendsRepo()
		messagesRepo = social.NewMemoryMessagesRepo()
	}

	marketSvc := market.NewService(market.SimulatedSource{})
	refresher, err := market.NewRefresher(marketSvc, app.Config.MarketRefreshInterval)
	if err != nil {
		return err
	}

	userSvc := users.NewService(userRepo)
	advisorSvc := advisor.NewService(marketSvc, profileAdapter{users: userSvc})
	resetSvc := passwordreset.NewService(resetRepo, userSvc, app.Queue)
	socialSvc := &social.Service{Friends: friendsRepo, Messages: messagesRepo, Users: userSvc}
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.UsersRepo = userRepo
	app.ResetRepo = resetRepo
	app.FriendsRepo = friendsRepo
	app.MessagesRepo = messagesRepo
	app.MarketService = marketSvc
	app.Refresher = refresher
	app.AdvisorService = advisorSvc
	app.UsersService = userSvc
	app.ResetService = resetSvc
	app.SocialService = socialSvc
	app.HealthService = health.NewService(app.DB, marketSvc)
	app.MarketHandler = market.NewHandler(marketSvc)
	app.AdvisorHandler = advisor.NewHandler(advisorSvc)
	app.UsersHandler = users.NewHandler(userSvc, app.Store)
	app.ResetHandler = passwordreset.NewHandler(resetSvc)
	app.SocialHandler = social.NewHandler(socialSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}

// profileAdapter persists the questionnaire echo on the user record.
type profileAdapter struct {
	users *users.Service
}

func (a profileAdapter) SaveInvestmentProfile(ctx context.Context, userID string, p advisor.Profile) error {
	return a.users.UpdateInvestmentProfile(ctx, userID, users.InvestmentProfile{
		Goal:            string(p.Goal),
		RiskStyle:       string(p.RiskStyle),
		FundLevel:       string(p.FundLevel),
		MarketCondition: string(p.MarketCondition),
	})
}
