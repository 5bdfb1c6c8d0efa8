package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib"
	"gitlab.com/lexiscan/contract-extraction/lib/corpus"
	"gitlab.com/lexiscan/contract-extraction/lib/eval"
	http_recogniser "gitlab.com/lexiscan/contract-extraction/lib/recogniser/http-recogniser"
	"gitlab.com/lexiscan/contract-extraction/lib/store"
)

type evaluatorConfig struct {
	LogLevel   string `mapstructure:"log_level"`
	Recogniser struct {
		Url      string
		ModelDir string `mapstructure:"model_dir"`
	}
	Quality struct {
		MaxTrainingNoise float64 `mapstructure:"max_training_noise"`
	}
	Store store.Config
}

var config evaluatorConfig

func initConfig() {
	err := lib.InitializeConfig("./config/evaluator.yml", map[string]interface{}{
		"log_level": "info",
		"recogniser": map[string]interface{}{
			"url":       "http://localhost:9090",
			"model_dir": "./models/lexiscan-ner",
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

	records, err := corpus.Load(ctx, annotations, config.Quality.MaxTrainingNoise)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load annotation store")
	}

	// Evaluate only on the validation partition to prevent leakage.
	_, validationSet := corpus.Split(records)
	if len(validationSet) == 0 {
		log.Fatal().Msg("no valid data found to evaluate model against")
	}

	recogniserClient := http_recogniser.New(config.Recogniser.Url)
	if err := recogniserClient.Load(ctx, config.Recogniser.ModelDir); err != nil {
		log.Fatal().Err(err).Msg("failed to load model, run training first")
	}

	report, err := eval.New(recogniserClient).Run(ctx, validationSet)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}

	log.Info().Int("examples", report.Examples).Msg("evaluation complete")
}
