package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/autotrack/vehicle-records/config"
	"github.com/autotrack/vehicle-records/firebase"
	"github.com/autotrack/vehicle-records/middleware"
	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"github.com/autotrack/vehicle-records/repositories/mysql"
	"github.com/autotrack/vehicle-records/services"
	"github.com/autotrack/vehicle-records/storage"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *mysql.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *mysql.RepositoryFactory

	// Repositories
	Repositories *repositories.Repositories
	TxManager    repositories.TransactionManager

	// Services
	Users               *services.RecordService[models.User]
	Cars                *services.CarService
	Tunings             *services.RecordService[models.Tuning]
	Maintenances        *services.RecordService[models.Maintenance]
	FuelEfficiencies    *services.RecordService[models.FuelEfficiency]
	Accidents           *services.RecordService[models.Accident]
	PeriodicInspections *services.RecordService[models.PeriodicInspection]
	Images              *services.ImageService

	// Auth
	Verifier       *firebase.Verifier
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := initDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := newDependencies(ctx, cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// newDependencies wires everything above an already opened database
func newDependencies(ctx context.Context, cfg *config.Config, factory *mysql.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	deps.initRepositories()
	deps.initServices()
	deps.initAuth(cfg)

	if err := deps.initStorage(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return deps, nil
}

// initDatabase opens the MySQL pool and creates missing tables
func initDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*mysql.RepositoryFactory, error) {
	factory, err := mysql.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository factory: %w", err)
	}

	if err := factory.InitSchema(ctx); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return factory, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	d.Repositories = d.RepoFactory.NewRepositories()
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initServices() {
	repos := d.Repositories

	d.Users = services.NewRecordService[models.User]("user", repos.Users, services.ErrUserNotFound, d.Logger)
	d.Cars = services.NewCarService(repos.Cars, d.TxManager, d.Logger)
	d.Tunings = services.NewRecordService[models.Tuning]("tuning", repos.Tunings, services.ErrRecordNotFound, d.Logger)
	d.Maintenances = services.NewRecordService[models.Maintenance]("maintenance", repos.Maintenances, services.ErrRecordNotFound, d.Logger)
	d.FuelEfficiencies = services.NewRecordService[models.FuelEfficiency]("fuel efficiency", repos.FuelEfficiencies, services.ErrRecordNotFound, d.Logger)
	d.Accidents = services.NewRecordService[models.Accident]("accident", repos.Accidents, services.ErrRecordNotFound, d.Logger)
	d.PeriodicInspections = services.NewRecordService[models.PeriodicInspection]("periodic inspection", repos.PeriodicInspections, services.ErrRecordNotFound, d.Logger)
}

// initAuth builds the Firebase verifier and the request gate around it
func (d *Dependencies) initAuth(cfg *config.Config) {
	var fetcher firebase.KeySetFetcher = firebase.NewHTTPKeySetFetcher(cfg.Firebase.JWKSURL, cfg.Firebase.HTTPTimeout)
	if cfg.Firebase.KeySetCacheTTL > 0 {
		fetcher = firebase.NewCachedKeySetFetcher(fetcher, cfg.Firebase.KeySetCacheTTL)
	}

	d.Verifier = firebase.NewVerifier(firebase.Config{
		ProjectID:  cfg.Firebase.ProjectID,
		IssuerBase: cfg.Firebase.IssuerBase,
	}, fetcher)

	// Adapter converts firebase.ParsedClaims to middleware.Claims for AuthMiddleware
	d.AuthMiddleware = middleware.NewAuthMiddleware(
		&firebaseTokenVerifierAdapter{verifier: d.Verifier},
		middleware.AuthPolicy{RequireEmailVerification: cfg.Firebase.RequireEmailVerification},
		d.Logger,
	)

	d.Logger.Info("firebase token verifier initialized",
		zap.String("project_id", cfg.Firebase.ProjectID),
		zap.Bool("require_email_verification", cfg.Firebase.RequireEmailVerification),
		zap.Duration("keyset_cache_ttl", cfg.Firebase.KeySetCacheTTL))
}

// initStorage connects the image service to R2 when the bucket is configured
func (d *Dependencies) initStorage(ctx context.Context, cfg *config.Config) error {
	if !cfg.Storage.Configured() {
		d.Logger.Warn("image storage not configured, uploads disabled")
		d.Images = services.NewImageService(nil, d.Logger)
		return nil
	}

	uploader, err := storage.NewR2Uploader(ctx, cfg.Storage, d.Logger)
	if err != nil {
		return err
	}

	d.Images = services.NewImageService(uploader, d.Logger)
	d.Logger.Info("image storage initialized",
		zap.String("bucket", cfg.Storage.BucketName))
	return nil
}

// claimsVerifier is the part of firebase.Verifier the adapter needs
type claimsVerifier interface {
	VerifyToken(ctx context.Context, token string) (*firebase.ParsedClaims, error)
}

// firebaseTokenVerifierAdapter adapts firebase.Verifier to middleware.TokenVerifier
type firebaseTokenVerifierAdapter struct {
	verifier claimsVerifier
}

func (a *firebaseTokenVerifierAdapter) VerifyToken(ctx context.Context, token string) (*middleware.Claims, error) {
	parsed, err := a.verifier.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &middleware.Claims{
		Subject:       parsed.Subject,
		Email:         parsed.Email,
		EmailVerified: parsed.EmailVerified,
		Audience:      parsed.Audience,
		Issuer:        parsed.Issuer,
		IssuedAt:      parsed.IssuedAt,
		ExpiresAt:     parsed.ExpiresAt,
	}, nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	_ = d.Logger.Sync()

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %w", errors.Join(errs...))
	}

	return nil
}
