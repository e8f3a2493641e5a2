package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/adapter/repository"
	"github.com/ArtLegends/medtravel-main-sub002/internal/config"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/database"
	"github.com/ArtLegends/medtravel-main-sub002/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	fixturePath := flag.String("file", "configs/fixtures/referral_codes.yaml", "referral code fixture file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      "console",
		Output:      "stdout",
		Development: true,
		Service:     "seed-registry",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	fixtures, err := loadFixtures(*fixturePath, cfg.Referral.MinCodeLength, time.Now().UTC())
	if err != nil {
		zapLogger.Fatal("Failed to load fixtures", zap.String("path", *fixturePath), zap.Error(err))
	}

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	principals := repository.NewPrincipalRepository(db, zapLogger)
	seeded := seed(context.Background(), db, principals, fixtures, zapLogger)

	zapLogger.Info("Referral registry seeded",
		zap.Int("codes_seeded", seeded),
		zap.Int("codes_in_file", len(fixtures)))
}

// seed upserts each code on (owner, program) and ensures its owner has a
// profile and the partner role. It returns the number of codes written.
func seed(ctx context.Context, db *gorm.DB, principals domainRepo.PrincipalRepository, fixtures []fixture, zapLogger *zap.Logger) int {
	seeded := 0
	for _, f := range fixtures {
		err := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_principal_id"}, {Name: "program_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "status", "approved_at"}),
		}).Create(f.Code).Error
		if err != nil {
			zapLogger.Error("Failed to upsert referral code",
				zap.String("code", f.Code.Code),
				zap.String("owner_principal_id", f.Code.OwnerPrincipalID),
				zap.Error(err))
			continue
		}

		if err := principals.EnsureBaseline(ctx, f.Profile, model.RolePartner); err != nil {
			zapLogger.Error("Failed to ensure partner baseline",
				zap.String("owner_principal_id", f.Code.OwnerPrincipalID),
				zap.Error(err))
			continue
		}

		zapLogger.Info("Referral code seeded",
			zap.String("code", f.Code.Code),
			zap.String("program_key", f.Code.ProgramKey),
			zap.String("status", string(f.Code.Status)))
		seeded++
	}
	return seeded
}
