package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"reportbox/backend/internal/config"
	"reportbox/backend/internal/models"
	"reportbox/backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.NewMongoStore(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect MongoDB: %v", err)
	}
	defer store.Disconnect(context.Background())

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: list | status <report_id> <pending|in-progress|resolved>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		if err := listReports(store); err != nil {
			log.Fatalf("Error listing reports: %v", err)
		}
	case "status":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin status <report_id> <pending|in-progress|resolved>")
			os.Exit(1)
		}
		report, err := store.UpdateReportStatus(context.Background(), os.Args[2], os.Args[3])
		if err != nil {
			log.Fatalf("Error updating status: %v", err)
		}
		fmt.Printf("Report %s is now %s.\n", report.ID.Hex(), report.Status)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func listReports(store *storage.MongoStore) error {
	reports, err := store.ListReports(context.Background())
	if err != nil {
		return err
	}

	for _, r := range reports {
		fmt.Printf("%s  [%s/%s]  %s — %s (%s)\n",
			r.ID.Hex(), priorityOrDefault(r), statusOrDefault(r),
			r.Title, r.Location, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("%d report(s).\n", len(reports))
	return nil
}

func priorityOrDefault(r models.Report) string {
	if r.Priority == "" {
		return models.PriorityMedium
	}
	return r.Priority
}

func statusOrDefault(r models.Report) string {
	if r.Status == "" {
		return models.StatusPending
	}
	return r.Status
}
