package main

import (
	"embed"
	"log"
	"net"

	"lifelens/internal"
	"lifelens/internal/config"
	"lifelens/internal/dashboard"
	"lifelens/internal/dataset"
	"lifelens/internal/metrics"
	"lifelens/internal/testkit"
	"lifelens/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed ui/templates/* ui/static/* ui/notes.md
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	logger := internal.DefaultLogger

	// Configure data source
	var loader *dataset.Loader
	if appConfig.Data.DatasetFile != "" {
		log.Printf("Using dataset file: %s", appConfig.Data.DatasetFile)
		loader = dataset.New(appConfig.Data.DatasetFile)
	} else {
		log.Printf("No dataset file configured, using synthetic data for testing")
		gen := testkit.NewGenerator(testkit.GeneratorConfig{
			Size: appConfig.Synthetic.Size,
			Seed: appConfig.Synthetic.Seed,
		})
		loader = dataset.NewFromRecords(gen.Generate())
	}

	ds, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("Dataset ready: %d records", ds.Len())

	var m *metrics.Metrics
	if appConfig.Metrics.Enabled {
		m = metrics.New()
	}

	svc := dashboard.NewService(ds, logger, m)
	server := ui.NewServer(svc, logger, m, embeddedFiles)
	if err := server.Initialize(); err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}

	addr := net.JoinHostPort("", appConfig.Server.Port)
	if err := server.Start(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
