// Package kafka publishes platform events to Apache Kafka.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Topic constants.  The configured topic prefix is prepended at publish time.
const (
	TopicSimulationCompleted      = "simulation.completed"
	TopicSimulationDeleted        = "simulation.deleted"
	TopicClassificationValidated  = "classification.validated"
	TopicClassificationFailed     = "classification.failed"
	TopicExchangeWindowExhausted  = "exchange.window_exhausted"
)

// EventEnvelope standardizes event messages.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// SimulationCompletedPayload announces one persisted simulation run.
type SimulationCompletedPayload struct {
	SimulationID   string    `json:"simulation_id"`
	Name           string    `json:"name"`
	Currency       string    `json:"currency"`
	NormalTotal    string    `json:"normal_total"`
	BenefitedTotal string    `json:"benefited_total"`
	EconomyAmount  string    `json:"economy_amount"`
	CompletedAt    time.Time `json:"completed_at"`
}

// ClassificationValidatedPayload announces a locked product classification.
type ClassificationValidatedPayload struct {
	ProductID          string    `json:"product_id"`
	ClassificationCode string    `json:"classification_code"`
	CountryCode        string    `json:"country_code"`
	ValidatedAt        time.Time `json:"validated_at"`
}

// NewEnvelope wraps payload into a standard envelope.  Marshalling payload
// failures are returned to the caller rather than published partially.
func NewEnvelope(eventType string, payload interface{}) (*EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        "smartimport",
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "1.0",
		Payload:       raw,
	}, nil
}

//Personal.AI order the ending
