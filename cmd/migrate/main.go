package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"course-advisor-be/internal/config"
	"course-advisor-be/internal/model"
	"course-advisor-be/pkg/database"

	"github.com/fatih/color"
)

type tabler interface {
	TableName() string
}

func main() {
	// 1. Load Configuration (.env is picked up by config.Load)
	cfg := config.Load()

	color.Cyan("Migrating %s store\n", cfg.Database.Driver)

	// 2. Connect to Database
	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// 3. AutoMigrate sessions and messages
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := model.Migrate(ctx, db); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	// 4. Report
	for _, m := range model.All() {
		name := fmt.Sprintf("%T", m)
		if t, ok := m.(tabler); ok {
			name = t.TableName()
		}
		if db.Migrator().HasTable(m) {
			color.Green("  ok       %s", name)
		} else {
			color.Yellow("  missing  %s", name)
		}
	}

	color.Green("Success: database migration completed")
}
