// Command admin: tooling operasional Reflectify (buat admin, seed, reset
// data dev, console interaktif).
package main

import (
	"errors"
	"log"
	"os"

	"reflectify_backend/internals/configs"
	database "reflectify_backend/internals/databases"
)

func main() {
	configs.LoadEnv()

	cli := &commandLine{
		openStores: openStores,
		isDev:      configs.IsDevelopment,
		stdout:     os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		log.Fatalf("❌ %v", err)
	}
}

// openStores: koneksi postgres yang sama dengan server (tanpa warm-up).
func openStores() (*database.Stores, func(), error) {
	database.ConnectDB()
	database.AutoMigrate()
	closeFn := func() {
		if sqlDB, err := database.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return database.NewGormStores(database.DB), closeFn, nil
}
