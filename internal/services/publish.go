package services

import (
	"encoding/json"
	"log"

	"github.com/showup-or-else/event_service/internal/interfaces"
)

// publish sends a mail event to the broker. Failures are logged and dropped;
// notification delivery never rolls back or fails the data mutation.
func publish(p interfaces.ProducerHandler, key string, payload interface{}) {
	if p == nil {
		return
	}
	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal %s payload failed: %v", key, err)
		return
	}
	if err := p.PublishMessage([]byte(key), value); err != nil {
		log.Printf("publish %s failed: %v", key, err)
	}
}
