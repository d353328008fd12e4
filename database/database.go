package database

import (
	"strings"
	"time"

	"orchestra-site/config"
	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/domain/users"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options is shared by every dialector; TranslateError lets callers match
// gorm.ErrDuplicatedKey regardless of the driver. SQL warnings go through
// the global zap logger. A missing row is an expected answer, not a warning.
func Options() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(zap.NewStdLog(zap.L()), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func InitDB() {
	log := zap.S()

	if config.DB_URL == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := Open(config.DB_URL)
	if err != nil {
		log.Fatalw("❌ Failed to connect to database", "error", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalw("❌ AutoMigrate error", "error", err)
	}

	DB = db
	log.Info("✅ Connected and migrated successfully")
}

// Open connects to postgres, or to a SQLite file when dsn starts with
// "sqlite://" (local development and tests).
func Open(dsn string) (*gorm.DB, error) {
	if path, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		return gorm.Open(sqlite.Open(path), Options())
	}
	return gorm.Open(postgres.Open(dsn), Options())
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// accounts
		&users.User{},

		// homepage
		&content.HomepageContent{},
		&content.EventCard{},
		&content.StaffMember{},
		&content.LeadershipSection{},
		&content.LeadershipMember{},

		// concerts
		&content.ConcertsContent{},
		&content.OrchestraGroup{},
		&content.Song{},

		// competitions
		&content.CompetitionsContent{},
		&content.Competition{},
		&content.CompetitionCategory{},

		// trips
		&content.TripsContent{},
		&content.GalleryImage{},
		&content.FeatureItem{},

		// awards
		&content.AwardsContent{},
		&content.Achievement{},
		&content.AwardImage{},

		// resources
		&content.ResourcesContent{},
	)
}
