// 数据库迁移工具：对配置的数据库执行 GORM AutoMigrate
package main

import (
	"fmt"
	"os"

	"upaay/backend/internal/config"
	sqlstore "upaay/backend/internal/storage/sql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Database.Type == "" {
		fmt.Fprintln(os.Stderr, "no database configured: set UPAAY_DATABASE_TYPE and UPAAY_DATABASE_DSN")
		os.Exit(1)
	}

	// NewStore 内部已执行 AutoMigrate
	store, err := sqlstore.NewStore(
		cfg.Database.Type,
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("migration completed for %s database\n", cfg.Database.Type)
}
