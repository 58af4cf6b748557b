package main

import (
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"

	"elderguard-data/internal/config"
	"elderguard-data/internal/database"
)

// 建表脚本：读取 db/schema.sql 并执行（幂等，可重复运行）
func main() {
	cfg := config.Load()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	sqlFile := filepath.Join("db", "schema.sql")
	sqlBytes, err := os.ReadFile(sqlFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read SQL file: %v\n", err)
		os.Exit(1)
	}

	if _, err := db.Exec(string(sqlBytes)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("elderguard tables created successfully")
}
