package main

import (
	"log"

	"github.com/limbo/stepdiary/internal/cli"
	"github.com/limbo/stepdiary/internal/service"
	"github.com/limbo/stepdiary/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	root := cli.NewRootCmd(cfg)
	if err := root.Execute(); err != nil {
		log.Println("stepdiary error: " + err.Error())
	}
}
