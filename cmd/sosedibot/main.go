package main

import (
	"log"

	"github.com/sosedi-ryadom/sosedibot/bot/app"
	corecmd "github.com/sosedi-ryadom/sosedibot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.Load(path)
		},
		Bootstrap: app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("sosedibot: %v", err)
	}
}
