package main

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/draft-league/internal/airtable"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"AIRTABLE_API_KEY", "AIRTABLE_BASE_ID"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	config["SEED_PLAYERS"] = os.Getenv("SEED_PLAYERS")
	config["SEED_SETS"] = os.Getenv("SEED_SETS")
	return config
}

func envCount(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// main fills a development base with players and reported sets. Never point
// it at the live league base.
func main() {
	log.Info("Starting league seeder...")
	cfg := loadConfig()
	numPlayers := envCount(cfg["SEED_PLAYERS"], 8)
	numSets := envCount(cfg["SEED_SETS"], 20)

	client := airtable.NewClient(cfg["AIRTABLE_API_KEY"], cfg["AIRTABLE_BASE_ID"])
	metricsSvc := metrics.NewService(prometheus.NewRegistry())
	repo := league.New(client, metricsSvc, nil)
	ctx := context.Background()

	startTime := time.Now()
	for i := 0; i < numPlayers; i++ {
		discordID := rand.Uint64()
		name := "Seeder " + uuid.NewString()[:8]
		power := 1500 + float64(rand.Intn(1000))
		if _, err := repo.RegisterPlayer(ctx, discordID, power, name); err != nil {
			log.Fatalf("Failed to register player %s: %s", name, err)
		}
	}
	log.Info("Registered players", "count", numPlayers)

	players, err := repo.RetrieveAllPlayers(ctx)
	if err != nil {
		log.Fatalf("Failed to read back players: %s", err)
	}
	if len(players) < 8 {
		log.Fatalf("Need at least 8 players to seed sets, have %d", len(players))
	}
	stages, err := repo.GetMapList(ctx)
	if err != nil {
		log.Fatalf("Failed to read map list: %s", err)
	}
	if len(stages) == 0 {
		log.Fatal("The Map List table is empty")
	}

	for i := 0; i < numSets; i++ {
		set := randomSet(players, stages)
		report, err := repo.ReportScores(ctx, set, 10+float64(rand.Intn(15)), 10+float64(rand.Intn(15)))
		if err != nil {
			log.Fatalf("Failed to report set: %s", err)
		}
		log.Info("Reported set", "completed", i+1, "total", numSets, "record", report.RecordID)
	}

	log.Info("Successfully seeded the base.", "duration", time.Since(startTime))
}

// randomSet draws two teams of four and a best-of-five (or shorter) result.
func randomSet(players []league.Player, stages []league.Stage) league.Set {
	picked := rand.Perm(len(players))[:8]
	set := league.Set{}
	for i, idx := range picked {
		if i < 4 {
			set.Alpha.Players = append(set.Alpha.Players, players[idx])
		} else {
			set.Bravo.Players = append(set.Bravo.Players, players[idx])
		}
	}

	alphaWins, bravoWins := 0, 0
	for alphaWins < 3 && bravoWins < 3 {
		set.Stages = append(set.Stages, stages[rand.Intn(len(stages))])
		if rand.Intn(2) == 0 {
			alphaWins++
			set.Alpha.OrderedMatchResults = append(set.Alpha.OrderedMatchResults, 1)
			set.Bravo.OrderedMatchResults = append(set.Bravo.OrderedMatchResults, 0)
		} else {
			bravoWins++
			set.Alpha.OrderedMatchResults = append(set.Alpha.OrderedMatchResults, 0)
			set.Bravo.OrderedMatchResults = append(set.Bravo.OrderedMatchResults, 1)
		}
	}
	return set
}
