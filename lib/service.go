package lib

import (
	"github.com/devanshm/bunkmate/config"
	"github.com/devanshm/bunkmate/lib/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	clock clock.Clock

	*accounts
	*subjects
	*toggles
	*timetable
}

func NewService(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, db *gorm.DB, clk clock.Clock) *Service {
	return &Service{
		cfg, log, db, clk,
		&accounts{cfg, log, db},
		&subjects{log, db, clk},
		&toggles{log, db, clk},
		&timetable{log, db},
	}
}
