package main

import (
	"context"
	"log"
	"os"

	"fluentko-be/internal/config"
	"fluentko-be/internal/constant"
	"fluentko-be/internal/entity"
	"fluentko-be/internal/repository/specification"
	"fluentko-be/internal/repository/unitofwork"
	"fluentko-be/pkg/database"

	"github.com/google/uuid"
)

// demoScenarios are the practice chats a fresh student account starts with.
var demoScenarios = []entity.ChatSession{
	{Title: "Cafe Order", Description: "Order an iced americano and a pastry at a Seoul cafe", Difficulty: "Beginner", Character: "Barista"},
	{Title: "Subway Directions", Description: "Ask a station attendant how to reach Gangnam", Difficulty: "Beginner", Character: "Station attendant"},
	{Title: "Job Interview", Description: "Introduce yourself to an interviewer using formal speech", Difficulty: "Advanced", Character: "Interviewer"},
}

func main() {
	cfg := config.Load()

	rawStudent := os.Getenv("SEED_STUDENT_ID")
	studentId, err := uuid.Parse(rawStudent)
	if err != nil {
		log.Fatalf("Error: SEED_STUDENT_ID must be a uuid, got %q", rawStudent)
	}

	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	existing, err := uow.ChatSessionRepository().Count(ctx, specification.StudentOwnedBy{StudentID: studentId})
	if err != nil {
		log.Fatal("Error: Failed to count chats:", err)
	}
	if existing > 0 {
		log.Printf("Student %s already has %d chats, skipping...", studentId, existing)
		return
	}

	log.Println("Seeding practice scenarios...")
	for _, s := range demoScenarios {
		session := s
		session.StudentId = studentId
		session.Background = constant.DefaultChatBackground
		if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
			log.Printf("Error creating chat '%s': %v", session.Title, err)
			continue
		}
		log.Printf("Created chat %d: %s", session.Id, session.Title)
	}

	log.Println("Scenario seeding completed!")
}
