package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib"
	http_recogniser "gitlab.com/lexiscan/contract-extraction/lib/recogniser/http-recogniser"
	"gitlab.com/lexiscan/contract-extraction/lib/render"
	"gitlab.com/lexiscan/contract-extraction/lib/store"
)

const version = "1.0.0"

type extractionAPIConfig struct {
	LogLevel string `mapstructure:"log_level"`
	Server   struct {
		HttpPort int `mapstructure:"http_port"`
	}
	Renderer struct {
		Url string
	}
	Recogniser struct {
		Url      string
		ModelDir string `mapstructure:"model_dir"`
	}
	Quality struct {
		HighNoiseWarning float64 `mapstructure:"high_noise_warning"`
	}
	Store store.Config
}

var config extractionAPIConfig

func initConfig() {
	err := lib.InitializeConfig("./config/extraction-api.yml", map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"http_port": 8080,
		},
		"renderer": map[string]interface{}{
			"url": "http://localhost:8081",
		},
		"recogniser": map[string]interface{}{
			"url":       "http://localhost:9090",
			"model_dir": "./models/lexiscan-ner",
		},
		"quality": map[string]interface{}{
			"high_noise_warning": 0.5,
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

	annotations, err := store.New(config.Store)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	recogniserClient := http_recogniser.New(config.Recogniser.Url)
	if err := recogniserClient.Load(context.Background(), config.Recogniser.ModelDir); err != nil {
		// Not fatal: the API comes up and reports 503 until a model exists.
		log.Warn().Err(err).Msg("recogniser not ready, serving will return 503")
	}

	c := controller{
		renderer:   render.NewHTTPRenderer(config.Renderer.Url),
		recogniser: recogniserClient,
		store:      annotations,
		warnNoise:  config.Quality.HighNoiseWarning,
		tempDir:    os.TempDir(),
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(lib.JsonLogFormatter), gin.Recovery())
	s := server{controller: c}
	s.RegisterRoutes(r)

	if err := r.Run(fmt.Sprintf(":%d", config.Server.HttpPort)); err != nil {
		log.Fatal().Err(err).Send()
	}
}
