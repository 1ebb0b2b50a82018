package database

import (
	"fmt"

	"github.com/flaboy/aira-pay/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db         *gorm.DB
	authDB     *gorm.DB
	orderingDB *gorm.DB
)

func open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "mysql":
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// Init 打开主库以及平台auth库、ordering库的连接。
// auth/ordering未单独配置时复用主库连接。
func Init() error {
	cfg := config.Config

	var err error
	if db, err = open(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		return fmt.Errorf("failed to open payment database: %w", err)
	}

	authDB = db
	if cfg.Database.AuthDSN != "" {
		if authDB, err = open(cfg.Database.Driver, cfg.Database.AuthDSN); err != nil {
			return fmt.Errorf("failed to open auth database: %w", err)
		}
	}

	orderingDB = db
	if cfg.Database.OrderingDSN != "" {
		if orderingDB, err = open(cfg.Database.Driver, cfg.Database.OrderingDSN); err != nil {
			return fmt.Errorf("failed to open ordering database: %w", err)
		}
	}

	return nil
}

// Database 本服务自己的库（发票、回调事件记录）
func Database() *gorm.DB {
	return db
}

// Auth 平台auth库，凭证表只读
func Auth() *gorm.DB {
	return authDB
}

// Ordering 平台ordering库，订单和商品表只读
func Ordering() *gorm.DB {
	return orderingDB
}
