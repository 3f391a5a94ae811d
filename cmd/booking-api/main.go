package main

import (
	"log"
	"os"

	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/cmd/booking-api/app"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/configs"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	logging.Init(cfg.App.Name, cfg.App.LogFile)

	app, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	log.Printf("booking-api (%s) listening on %s", env, cfg.App.HTTPAddr)
	if err := app.Router.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
