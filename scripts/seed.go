package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/infrastructure/clients/postgres"
	"github.com/gatherhq/gatherly/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := goqu.Dialect("postgres").DB(pgClient.DB())

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				rsvps,
				event_categories,
				events,
				community_members,
				communities,
				user_interests,
				users,
				categories,
				locations
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	now := time.Now().UTC()

	locationLagos := uuid.New().String()
	locationAccra := uuid.New().String()
	if _, err := db.Insert("locations").Rows(
		goqu.Record{"id": locationLagos, "name": "Lagos", "slug": "lagos"},
		goqu.Record{"id": locationAccra, "name": "Accra", "slug": "accra"},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed locations: %v", err)
	}

	categoryTech := uuid.New().String()
	categoryFood := uuid.New().String()
	categoryFitness := uuid.New().String()
	if _, err := db.Insert("categories").Rows(
		goqu.Record{"id": categoryTech, "name": "Technology", "slug": "technology"},
		goqu.Record{"id": categoryFood, "name": "Food & Drink", "slug": "food-drink"},
		goqu.Record{"id": categoryFitness, "name": "Fitness", "slug": "fitness"},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	userAda := uuid.New().String()
	userBayo := uuid.New().String()
	userChidi := uuid.New().String()
	if _, err := db.Insert("users").Rows(
		goqu.Record{
			"id": userAda, "email": "ada@example.com", "name": "Ada Obi",
			"profession": "Software Engineer", "experience_level": entities.ExperienceSenior,
			"location_id": locationLagos, "created_at": now, "updated_at": now,
		},
		goqu.Record{
			"id": userBayo, "email": "bayo@example.com", "name": "Bayo Adeyemi",
			"profession": "Product Designer", "experience_level": entities.ExperienceMid,
			"location_id": locationLagos, "created_at": now, "updated_at": now,
		},
		goqu.Record{
			"id": userChidi, "email": "chidi@example.com", "name": "Chidi Eze",
			"profession": "Chef", "experience_level": entities.ExperienceJunior,
			"location_id": locationAccra, "created_at": now, "updated_at": now,
		},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	if _, err := db.Insert("user_interests").Rows(
		goqu.Record{"user_id": userAda, "category_id": categoryTech, "level": 9},
		goqu.Record{"user_id": userBayo, "category_id": categoryTech, "level": 6},
		goqu.Record{"user_id": userBayo, "category_id": categoryFitness, "level": 4},
		goqu.Record{"user_id": userChidi, "category_id": categoryFood, "level": 8},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed user interests: %v", err)
	}

	communityTech := uuid.New().String()
	communityFood := uuid.New().String()
	if _, err := db.Insert("communities").Rows(
		goqu.Record{
			"id": communityTech, "name": "Tech Lagos", "description": "Builders and tinkerers in Lagos",
			"topic": "Technology", "is_public": true, "location_id": locationLagos,
			"created_at": now, "updated_at": now,
		},
		goqu.Record{
			"id": communityFood, "name": "Accra Foodies", "description": "Eating our way through Accra",
			"topic": "Food", "is_public": true, "location_id": locationAccra,
			"created_at": now, "updated_at": now,
		},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed communities: %v", err)
	}

	if _, err := db.Insert("community_members").Rows(
		goqu.Record{"community_id": communityTech, "user_id": userAda, "role": "owner", "created_at": now},
		goqu.Record{"community_id": communityTech, "user_id": userBayo, "role": "member", "created_at": now},
		goqu.Record{"community_id": communityFood, "user_id": userChidi, "role": "owner", "created_at": now},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed community members: %v", err)
	}

	eventReact := uuid.New().String()
	eventCooking := uuid.New().String()
	eventRun := uuid.New().String()
	if _, err := db.Insert("events").Rows(
		goqu.Record{
			"id": eventReact, "title": "React Native Meetup", "description": "Monthly mobile dev meetup",
			"status": entities.EventStatusPublished, "location_id": locationLagos, "community_id": communityTech,
			"is_online": false, "price": 0, "currency": "NGN",
			"starts_at": now.Add(7 * 24 * time.Hour), "ends_at": now.Add(7*24*time.Hour + 3*time.Hour),
			"created_at": now, "updated_at": now,
		},
		goqu.Record{
			"id": eventCooking, "title": "Jollof Cooking Class", "description": "Hands-on cooking session",
			"status": entities.EventStatusPublished, "location_id": locationAccra, "community_id": communityFood,
			"is_online": false, "price": 25, "currency": "GHS",
			"starts_at": now.Add(3 * 24 * time.Hour), "ends_at": now.Add(3*24*time.Hour + 2*time.Hour),
			"created_at": now, "updated_at": now,
		},
		goqu.Record{
			"id": eventRun, "title": "Saturday Morning Run", "description": "Casual 5k along the waterfront",
			"status": entities.EventStatusPublished, "location_id": locationLagos,
			"is_online": false, "price": 0, "currency": "NGN",
			"starts_at": now.Add(5 * 24 * time.Hour), "ends_at": now.Add(5*24*time.Hour + time.Hour),
			"created_at": now, "updated_at": now,
		},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed events: %v", err)
	}

	if _, err := db.Insert("event_categories").Rows(
		goqu.Record{"event_id": eventReact, "category_id": categoryTech},
		goqu.Record{"event_id": eventCooking, "category_id": categoryFood},
		goqu.Record{"event_id": eventRun, "category_id": categoryFitness},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed event categories: %v", err)
	}

	if _, err := db.Insert("rsvps").Rows(
		goqu.Record{"id": uuid.New().String(), "event_id": eventReact, "user_id": userAda, "status": "going", "created_at": now},
		goqu.Record{"id": uuid.New().String(), "event_id": eventReact, "user_id": userBayo, "status": "going", "created_at": now},
		goqu.Record{"id": uuid.New().String(), "event_id": eventCooking, "user_id": userChidi, "status": "going", "created_at": now},
	).Executor().ExecContext(ctx); err != nil {
		log.Fatalf("Failed to seed RSVPs: %v", err)
	}

	log.Println("Seed data inserted successfully")
}
