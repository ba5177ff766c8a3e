package main

import (
	"flag"
	"log"
	"os"

	"github.com/sachin24864/RealEstate-Website/internal/app"
	"github.com/sachin24864/RealEstate-Website/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("ESTATE_CONFIG_PATH"), "path to config file or directory")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	application.Run()
}
