package mqttbus

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher sends JSON payloads to a fixed topic.
type Publisher struct {
	client mqtt.Client
	topic  string
	qos    byte
}

func NewPublisher(client mqtt.Client, topic string, qos byte) *Publisher {
	return &Publisher{client: client, topic: topic, qos: qos}
}

// Publish marshals v and publishes it, waiting for broker acknowledgement.
func (p *Publisher) Publish(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal for %s: %w", p.topic, err)
	}
	token := p.client.Publish(p.topic, p.qos, false, b)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, token.Error())
	}
	return nil
}

// Close disconnects the underlying client.
func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
