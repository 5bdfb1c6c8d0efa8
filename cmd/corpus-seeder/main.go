package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib"
	"gitlab.com/lexiscan/contract-extraction/lib/store"
)

// corpus-seeder writes synthetic annotated contracts into the annotation
// store so that training and evaluation have something to run against
// before real reviewed annotations accumulate.

type seederConfig struct {
	LogLevel string `mapstructure:"log_level"`
	Seeder   struct {
		Count  int    `mapstructure:"count"`
		Source string `mapstructure:"source"`
	}
	Store store.Config
}

var config seederConfig

func initConfig() {
	err := lib.InitializeConfig("./config/corpus-seeder.yml", map[string]interface{}{
		"log_level": "info",
		"seeder": map[string]interface{}{
			"count":  50,
			"source": "synthetic-contracts",
		},
		"store": map[string]interface{}{
			"backend": "file",
			"file": map[string]interface{}{
				"dir": "./data/annotations",
			},
		},
	}, &config)
	if err != nil {
		panic(err)
	}
}

func main() {
	initConfig()
	ctx := context.Background()

	annotations, err := store.New(config.Store)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < config.Seeder.Count; i++ {
		record := generate(rng)
		if err := annotations.Append(ctx, config.Seeder.Source, record); err != nil {
			log.Fatal().Err(err).Msg("failed to append synthetic record")
		}
	}

	log.Info().
		Int("count", config.Seeder.Count).
		Str("source", config.Seeder.Source).
		Msg("seeded synthetic annotated contracts")
}
