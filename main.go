package main

import (
	"github.com/showup-or-else/event_service/config"
	"github.com/showup-or-else/event_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
