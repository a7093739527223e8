package simulator

import (
	"context"
	"log"
	"time"

	"github.com/mfalchetti/standgrow/pkg/mqttbus"
)

// Service publishes one sample per station at a fixed interval.
type Service struct {
	publisher *mqttbus.Publisher
	generator *Generator
	stations  []string
	interval  time.Duration
}

func NewService(p *mqttbus.Publisher, g *Generator, stations []string, interval time.Duration) *Service {
	return &Service{publisher: p, generator: g, stations: stations, interval: interval}
}

// Start emits samples until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.publisher.Close()
			return
		case now := <-ticker.C:
			for _, station := range s.stations {
				sample := s.generator.Next(station, now)
				if err := s.publisher.Publish(sample); err != nil {
					log.Printf("simulator: publish for %s: %v", station, err)
				}
			}
		}
	}
}
