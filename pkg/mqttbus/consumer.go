package mqttbus

import (
	"context"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Handler processes one message from a subscription.
type Handler func(topic string, message mqtt.Message) error

// Consumer subscribes to one topic filter and routes messages to a handler.
type Consumer struct {
	client  mqtt.Client
	topic   string
	qos     byte
	handler Handler
}

func NewConsumer(client mqtt.Client, topic string, qos byte, handler Handler) *Consumer {
	return &Consumer{client: client, topic: topic, qos: qos, handler: handler}
}

func (c *Consumer) SetHandler(h Handler) { c.handler = h }

// Consume subscribes and blocks until ctx is cancelled, then unsubscribes.
func (c *Consumer) Consume(ctx context.Context) {
	token := c.client.Subscribe(c.topic, c.qos, func(_ mqtt.Client, msg mqtt.Message) {
		if c.handler == nil {
			log.Printf("mqttbus: no handler set for %s", c.topic)
			return
		}
		if err := c.handler(msg.Topic(), msg); err != nil {
			log.Printf("mqttbus: handler error on %s: %v", msg.Topic(), err)
		}
	})
	if token.Wait() && token.Error() != nil {
		log.Printf("mqttbus: subscribe %s: %v", c.topic, token.Error())
		return
	}
	log.Printf("subscribed to %s", c.topic)

	<-ctx.Done()

	unsub := c.client.Unsubscribe(c.topic)
	unsub.Wait()
}
