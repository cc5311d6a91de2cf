package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/sheets"
)

// Writes the same test lead twice against a real spreadsheet: the first run
// appends (or updates, if it already exists) and the second must update.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found, using process environment")
	}

	if os.Getenv("SPREADSHEET_ID") == "" {
		log.Fatal("❌ SPREADSHEET_ID must be set")
	}

	ctx := context.Background()
	svc, err := sheets.NewService(ctx, sheets.Credentials{
		ServiceAccountJSON: os.Getenv("GOOGLE_CREDENTIALS"),
		ClientID:           os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret:       os.Getenv("GOOGLE_CLIENT_SECRET"),
		RefreshToken:       os.Getenv("GOOGLE_REFRESH_TOKEN"),
	})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	sheet := sheets.NewLeadSheet(sheets.NewClient(svc), os.Getenv("SPREADSHEET_ID"), os.Getenv("SHEET_NAME"))

	lead := entity.NewLead("sheets-test@example.com")
	lead.Name = "Sheets Test"
	lead.Company = "Example Co"
	lead.Message = "Sample submission from test-sheets-upsert"

	for i := 1; i <= 2; i++ {
		fmt.Printf("🔄 Upsert #%d for %s...\n", i, lead.Email)
		result, err := sheet.Upsert(ctx, lead, time.Now().UTC())
		if err != nil {
			log.Fatalf("❌ upsert failed: %v", err)
		}
		fmt.Printf("✅ %s at row %d (createdAt %s)\n", result.Action, result.Position, result.CreatedAt.Format(time.RFC3339))
		lead.Name = "Sheets Test (updated)"
	}
}
