package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"smb_forecast/pkg/api/forecast"
	"smb_forecast/pkg/core/statement"
)

type serverConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Engine statement.Config `yaml:"engine"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := serverConfig{}
	cfg.Server.Port = 8080
	cfg.Engine = statement.DefaultConfig()
	if data, err := os.ReadFile("config/defaults.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Printf("[WARNING] Failed to parse config/defaults.yaml: %v\n", err)
		}
	} else {
		fmt.Println("[CONFIG] config/defaults.yaml not found, using built-in defaults")
	}
	if p := os.Getenv("PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			cfg.Server.Port = port
		}
	}

	// Forecast engine endpoints
	forecast.InitHandler(cfg.Engine)
	http.HandleFunc("/api/models/calculate", forecast.HandleCalculate)
	http.HandleFunc("/api/models/monte-carlo", forecast.HandleMonteCarlo)
	http.HandleFunc("/api/models/scenario-calculate", forecast.HandleScenarioCalculate)
	http.HandleFunc("/api/models/single-scenario", forecast.HandleSingleScenario)
	http.HandleFunc("/api/models/sensitivity-analysis", forecast.HandleSensitivityAnalysis)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/models/calculate")
	fmt.Println("  - POST /api/models/monte-carlo")
	fmt.Println("  - POST /api/models/scenario-calculate")
	fmt.Println("  - POST /api/models/single-scenario")
	fmt.Println("  - POST /api/models/sensitivity-analysis")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
