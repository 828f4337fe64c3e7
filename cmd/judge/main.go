package main

import (
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	mathrand "math/rand"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"gomori/internal/judge"
)

func main() {
	// A .env file can provide defaults for the flags below.
	_ = godotenv.Load()

	numGames := flag.Int("num-games", envInt("GOMORI_NUM_GAMES", 100), "how many games to play per matchup")
	seed := flag.Int64("seed", 0, "RNG seed (0 picks a random seed)")
	stopOnIllegalMove := flag.Bool("stop-on-illegal-move", false, "stop a matchup as soon as one player makes an illegal move")
	recordDir := flag.String("record-games-to-directory", os.Getenv("GOMORI_RECORD_DIR"), "record the games' interactions as JSON files into this directory")
	logLevel := flag.String("log-level", envString("GOMORI_LOG_LEVEL", "info"), "one of panic, fatal, error, warn, info, debug, trace")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <player-config.json> <player-config.json>...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	initLogging(*logLevel)

	if *seed == 0 {
		*seed = randomSeed()
	}
	logrus.WithField("seed", *seed).Info("starting")
	rng := mathrand.New(mathrand.NewSource(*seed))

	var recorder *judge.Recorder
	if *recordDir != "" {
		var err error
		recorder, err = judge.NewRecorder(*recordDir)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	configs := make([]judge.PlayerConfig, 0, flag.NArg())
	for _, path := range flag.Args() {
		config, err := judge.LoadPlayerConfig(path)
		if err != nil {
			logrus.Fatal(err)
		}
		configs = append(configs, config)
	}

	tournament := judge.NewTournament(configs, judge.MatchOptions{
		NumGames:          *numGames,
		StopOnIllegalMove: *stopOnIllegalMove,
	})
	if err := tournament.Run(rng, recorder, os.Stderr); err != nil {
		logrus.Fatal(err)
	}

	if len(configs) > 2 {
		tournament.WriteTable(os.Stdout)
	}
}

func initLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("unknown log level %q", level)
	}
	logrus.SetLevel(parsed)
}

func randomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		logrus.Fatal(err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.Fatalf("invalid value %q for %s", value, key)
		return fallback
	}
	return parsed
}
