package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"presale-core/internal/model"
	"presale-core/pkg/config"
	"presale-core/pkg/database"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var command, dir string
	flag.StringVar(&command, "cmd", "up", "Command to run: up, down, auto")
	flag.StringVar(&dir, "dir", "migrations", "Directory containing the SQL migrations")
	flag.Parse()

	// 加载配置
	config.Init()
	db := config.Global.DB

	// auto: 开发环境直接使用 GORM AutoMigrate
	if command == "auto" {
		gdb, err := database.ConnectPostgres(database.BuildPostgresDSN(db.Host, db.User, db.Password, db.Name, db.Port), config.Global.App.Env)
		if err != nil {
			log.Fatalf("Database connect failed: %v", err)
		}
		if err := gdb.AutoMigrate(model.AllModels()...); err != nil {
			log.Fatalf("AutoMigrate failed: %v", err)
		}
		log.Println("AutoMigrate done")
		return
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		db.User, db.Password, db.Host, db.Port, db.Name)

	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		log.Fatalf("Migration init failed: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Println("Migration up done")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Println("Migration down done")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}
