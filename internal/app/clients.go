package app

import (
	"github.com/yungbote/admitpath-backend/internal/clients/openai"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
	"github.com/yungbote/admitpath-backend/internal/realtime"
)

type Clients struct {
	OpenAI openai.Client
	Bus    realtime.Bus
}

// wireClients builds the outbound dependencies. The redis bus is optional:
// without REDIS_ADDR, events stay in-process via the local bus.
func wireClients(log *logger.Logger, hub *realtime.Hub) (Clients, error) {
	log.Info("Wiring clients...")

	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, err
	}

	bus, err := realtime.NewRedisBus(log)
	if err != nil {
		log.Warn("Redis bus unavailable; using in-process event bus", "error", err)
		bus = realtime.NewLocalBus(hub)
	}

	return Clients{OpenAI: ai, Bus: bus}, nil
}
