package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phishguard/pattern-engine/internal/adapters/providers"
	"github.com/phishguard/pattern-engine/internal/adapters/storage"
	"github.com/phishguard/pattern-engine/internal/adapters/telemetry"
	"github.com/phishguard/pattern-engine/internal/application"
	"github.com/phishguard/pattern-engine/internal/config"
	"github.com/phishguard/pattern-engine/internal/domain"
	"github.com/phishguard/pattern-engine/internal/domain/baseline"
	"github.com/phishguard/pattern-engine/internal/domain/engine"
	"github.com/phishguard/pattern-engine/internal/logging"
	"github.com/phishguard/pattern-engine/internal/ports"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.InitLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting phishing pattern analysis service")

	// Storage adapter (driven port implementation), selected by config
	store, err := newStorage(cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	// Baseline single-signal detector (upstream of the pattern engine)
	detector := baseline.NewDetector(
		cfg.GetStringSlice("detector.internal_domains"),
		cfg.GetStringSlice("detector.brand_domains"),
	)

	// Pattern decision engine with opt-in telemetry
	var sink engine.TelemetrySink = telemetry.NewNopSink()
	if cfg.GetBool("engine.telemetry_enabled") {
		sink = telemetry.NewLogSink(logger)
	}
	patternEngine := engine.New(cfg.EngineConfig(),
		engine.WithLogger(logger),
		engine.WithTelemetrySink(sink),
	)

	// Provider adapters, selected dynamically per tenant
	providerMap := map[domain.Provider]ports.EmailProvider{
		domain.ProviderMicrosoft: providers.NewMicrosoftClient(),
		domain.ProviderGoogle:    providers.NewGoogleClient(),
	}

	directory := application.Directory{
		KnownContacts:  cfg.GetStringSlice("detector.known_contacts"),
		TrustedDomains: cfg.GetStringSlice("detector.trusted_domains"),
	}

	service := application.NewAnalysisService(store, detector, patternEngine, providerMap, directory, logger)

	// Sample tenants for demonstration; in production tenants come from an
	// admin API.
	ctx := context.Background()
	tenants := []*domain.Tenant{
		{
			ID:        uuid.New(),
			Name:      "Acme Corp.",
			Provider:  domain.ProviderGoogle,
			Status:    "active",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			ID:        uuid.New(),
			Name:      "Beta Industries",
			Provider:  domain.ProviderMicrosoft,
			Status:    "active",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	for _, tenant := range tenants {
		if err := service.IngestEmailsForTenant(ctx, tenant); err != nil {
			logger.Fatal("ingestion failed",
				zap.String("tenant", tenant.Name),
				zap.Error(err),
			)
		}
	}

	if err := service.ProcessUnprocessedEmails(ctx); err != nil {
		logger.Fatal("processing failed", zap.Error(err))
	}

	flagged, err := service.GetFlaggedSummary(ctx, 10)
	if err != nil {
		logger.Fatal("failed to fetch flagged evaluations", zap.Error(err))
	}

	if len(flagged) > 0 {
		fmt.Printf("\n=== %d email(s) flagged by the pattern engine ===\n", len(flagged))
		for i, ev := range flagged {
			for _, warning := range ev.Result.FinalWarnings {
				if !warning.IsComposite() {
					continue
				}
				fmt.Printf("%d. %s [%s] - %d pattern(s), %d baseline warning(s) absorbed\n",
					i+1, warning.Title, warning.Severity,
					warning.Composite.PatternCount, len(warning.Composite.Suppressed))
				fmt.Printf("   %s\n", warning.Recommendation)
			}
		}
		fmt.Println("===============================================")
	}

	logger.Info("analysis run complete", zap.Int("flagged", len(flagged)))
}

// newStorage selects the storage adapter from configuration
func newStorage(cfg *config.Config) (ports.Storage, error) {
	switch cfg.GetString("storage.type") {
	case "postgres":
		store, err := storage.NewPostgresStore(cfg.GetString("storage.postgres_dsn"))
		if err != nil {
			return nil, err
		}
		if err := store.InitSchema(); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
		return store, nil
	case "sqlite":
		return storage.NewSQLiteStore(cfg.GetString("storage.sqlite_path"))
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.GetString("storage.type"))
	}
}
