package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/lalankumar17/Automated-Examination-Management-System/config"
	"github.com/lalankumar17/Automated-Examination-Management-System/database"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Println("Warning: .env file not loaded, using system environment variables:", err)
	}

	env, err := config.Get()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM(env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Exam Timetable - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	if err := database.RunSeeds(context.Background(), store.TxManager()); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("🎉 Seeding completed successfully!")
	fmt.Println(separator)
}
