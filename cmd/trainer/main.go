package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib"
	"gitlab.com/lexiscan/contract-extraction/lib/corpus"
	http_recogniser "gitlab.com/lexiscan/contract-extraction/lib/recogniser/http-recogniser"
	"gitlab.com/lexiscan/contract-extraction/lib/store"
	"gitlab.com/lexiscan/contract-extraction/lib/train"
)

type trainerConfig struct {
	LogLevel   string `mapstructure:"log_level"`
	Recogniser struct {
		Url string
	}
	Quality struct {
		MaxTrainingNoise float64 `mapstructure:"max_training_noise"`
	}
	Store    store.Config
	Training train.Config
}

var config trainerConfig

func initConfig() {
	err := lib.InitializeConfig("./config/trainer.yml", map[string]interface{}{
		"log_level": "info",
		"recogniser": map[string]interface{}{
			"url": "http://localhost:9090",
		},
		"quality": map[string]interface{}{
			"max_training_noise": corpus.DefaultMaxTrainingNoise,
		},
		"store": map[string]interface{}{
			"backend": "file",
			"file": map[string]interface{}{
				"dir": "./data/annotations",
			},
		},
		"training": map[string]interface{}{
			"epochs":          20,
			"min_batch_size":  4,
			"max_batch_size":  32,
			"compound_rate":   1.001,
			"min_corpus_size": 10,
			"model_dir":       "./models/lexiscan-ner",
			"seed":            42,
		},
	}, &config)
	if err != nil {
		panic(err)
	}
}

func main() {
	initConfig()
	ctx := lib.CancelOnInterrupt(context.Background())

	annotations, err := store.New(config.Store)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	records, err := corpus.Load(ctx, annotations, config.Quality.MaxTrainingNoise)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load annotation store")
	}
	if len(records) == 0 {
		log.Fatal().Msg("no valid annotated training data found")
	}

	trainingSet, validationSet := corpus.Split(records)
	log.Info().
		Int("training", len(trainingSet)).
		Int("validation", len(validationSet)).
		Msg("loaded annotated documents")

	trainer := train.New(http_recogniser.New(config.Recogniser.Url), config.Training)
	if err := trainer.Run(ctx, trainingSet); err != nil {
		log.Fatal().Err(err).Str("state", string(trainer.State())).Msg("training failed")
	}
}
