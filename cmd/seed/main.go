package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/trn-gabru/lafabrica/internal/auth"
	"github.com/trn-gabru/lafabrica/internal/config"
	"github.com/trn-gabru/lafabrica/internal/db"
	"github.com/trn-gabru/lafabrica/internal/models"
	"github.com/trn-gabru/lafabrica/internal/portfolio"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds the admin credential and the initial portfolio content. Safe to run
// repeatedly: existing documents are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatalf("index creation failed: %v", err)
	}

	if err := seedAdmin(ctx, cols, cfg); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	if err := seedPortfolio(ctx, cols, cfg); err != nil {
		log.Fatalf("portfolio seed failed: %v", err)
	}

	log.Println("seed complete")
}

func seedAdmin(ctx context.Context, cols *db.Collections, cfg *config.Config) error {
	username := models.NormalizeUsername(os.Getenv("SEED_ADMIN_USER"))
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Println("SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	count, err := cols.Admins.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("admin %q already exists", username)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().In(cfg.Timezone)
	admin := models.Admin{
		ID:           primitive.NewObjectID().Hex(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := cols.Admins.InsertOne(ctx, admin); err != nil {
		return err
	}
	log.Printf("admin %q created", username)
	return nil
}

func seedPortfolio(ctx context.Context, cols *db.Collections, cfg *config.Config) error {
	now := time.Now().In(cfg.Timezone)

	for _, item := range seedItems {
		item.ID = primitive.NewObjectID().Hex()
		item.CreatedAt = now
		item.UpdatedAt = now
		for i := range item.Images {
			item.Images[i].ID = primitive.NewObjectID().Hex()
		}

		res, err := cols.PortfolioItems.UpdateOne(ctx,
			bson.M{"slug": item.Slug},
			bson.M{"$setOnInsert": item},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
		if res.UpsertedCount > 0 {
			log.Printf("seeded portfolio item %q", item.Slug)
		} else {
			log.Printf("portfolio item %q already exists", item.Slug)
		}
	}
	return nil
}

var seedItems = []portfolio.Item{
	{
		Slug:           "tensile-canopy-structures",
		Title:          "Tensile Canopy Structures",
		HeroHeading:    "Durable Tensile Canopies for Every Space",
		HeroSubheading: "Modern shade solutions that combine sculptural beauty with unbeatable functionality.",
		Introduction:   "A tensile canopy is more than just a roof - it's architecture in motion. Light and flexible, our custom canopies seem to float above your outdoor areas, filtering sunlight and rain alike.",
		WhyChoose:      "With decades of shade-crafting experience, we ensure each canopy is precision-engineered and installed. From initial design to final tensioning, our team treats your project as an architectural statement.",
		CTA:            "Get started - request a free canopy design consultation today.",
		Features: []portfolio.Feature{
			{Title: "Sleek Aesthetics", Description: "Crafted from premium fabrics and slender supports, our canopies lend a contemporary, gallery-like look to gardens, patios, and courtyards."},
			{Title: "Large Coverage", Description: "A single sweeping canopy can shade an entire pool deck or backyard lounge without bulky pillars."},
			{Title: "Lightweight Strength", Description: "The fabrics we use block harmful UV rays while staying surprisingly lightweight, letting natural daylight glow through."},
			{Title: "Custom Curves", Description: "Every canopy is custom-designed - a gentle sail-like curve, a bold asymmetry, or multiple intersecting panels."},
		},
		Images: []portfolio.Image{
			{URL: "/uploads/portfolio/seed-canopy-hero.jpg", Alt: "Modern tensile canopy structure", Title: "Tensile Canopy", Order: 0},
			{URL: "/uploads/portfolio/seed-canopy-patio.jpg", Alt: "Tensile canopy over outdoor patio", Title: "Patio Canopy", Order: 1},
		},
	},
	{
		Slug:           "window-awning-design",
		Title:          "Window Awning Design",
		HeroHeading:    "Window Awnings: Style Meets Comfort",
		HeroSubheading: "Tailored awnings that cut glare and heat while dressing up every facade.",
		Introduction:   "Window awnings shield interiors from harsh sun and rain while adding a crafted architectural accent to the building face.",
		WhyChoose:      "Each awning is measured, fabricated, and fitted to the specific window, with frames and fabrics chosen for the local climate.",
		CTA:            "Ask for a free on-site awning measurement.",
		Features: []portfolio.Feature{
			{Title: "Heat Reduction", Description: "Keeps direct sun off the glass, noticeably lowering indoor temperatures in summer."},
			{Title: "Fade Protection", Description: "Shields furniture and flooring from UV fading without blacking out the room."},
		},
		Images: []portfolio.Image{
			{URL: "/uploads/portfolio/seed-awning-hero.jpg", Alt: "Window awning over a storefront", Title: "Window Awning", Order: 0},
		},
	},
	{
		Slug:           "car-parking-shade-structures",
		Title:          "Car Parking Shade Structures",
		HeroHeading:    "Protect Every Vehicle, Rain or Shine",
		HeroSubheading: "Wide-span parking shades engineered for homes, offices, and commercial lots.",
		Introduction:   "Our tensile parking structures span multiple bays with minimal columns, keeping vehicles cool and protected year round.",
		WhyChoose:      "Galvanized steel frames and high-tenacity membranes are engineered for wind load and monsoon rain, then installed by our own crews.",
		CTA:            "Request a layout proposal for your parking area.",
		Features: []portfolio.Feature{
			{Title: "Minimal Columns", Description: "Cantilevered and arch designs free up maneuvering space between bays."},
			{Title: "All-Weather Membranes", Description: "Membranes rated for UV, heat, and heavy rain keep their tension and color for years."},
		},
		Images: []portfolio.Image{
			{URL: "/uploads/portfolio/seed-parking-hero.jpg", Alt: "Tensile car parking shade", Title: "Parking Shade", Order: 0},
		},
	},
}
