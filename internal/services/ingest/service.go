// Package ingest receives raw sensor samples over MQTT and lands them in
// InfluxDB, where the sensor-derived pipeline reads them back.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mfalchetti/standgrow/internal/model/messages"
	"github.com/mfalchetti/standgrow/pkg/dedup"
	"github.com/mfalchetti/standgrow/pkg/mqttbus"
)

type Service struct {
	consumer *mqttbus.Consumer
	writer   *Writer
	deduper  *dedup.Deduper
	metrics  *Metrics
}

func NewService(consumer *mqttbus.Consumer, writer *Writer, metrics *Metrics) *Service {
	s := &Service{
		consumer: consumer,
		writer:   writer,
		deduper:  dedup.New(10*time.Minute, 20000),
		metrics:  metrics,
	}
	consumer.SetHandler(s.handleMessage)
	return s
}

func (s *Service) handleMessage(topic string, msg mqtt.Message) error {
	payload := msg.Payload()
	if !s.deduper.Accept(dedup.Key(payload)) {
		s.metrics.Duplicates.Inc()
		return nil
	}

	var sample messages.RawSample
	if err := json.Unmarshal(payload, &sample); err != nil {
		s.metrics.DecodeErrors.Inc()
		return fmt.Errorf("decode sample on %s: %w", topic, err)
	}
	if sample.Timestamp.IsZero() {
		s.metrics.DecodeErrors.Inc()
		return fmt.Errorf("sample on %s has no timestamp", topic)
	}

	s.writer.WriteSample(sample)
	s.metrics.SamplesIngested.Inc()
	return nil
}

// Start consumes until ctx is cancelled, then flushes pending writes.
func (s *Service) Start(ctx context.Context) {
	go s.consumer.Consume(ctx)

	<-ctx.Done()
	s.writer.Flush()
	log.Println("ingest: stopped")
}
