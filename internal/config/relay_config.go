package config

import "os"

// RelayConfig holds configuration for the outbox relay service.
// This is a minimal config that only includes what the relay needs.
type RelayConfig struct {
	DatabaseURL        string
	RabbitMQURL        string
	AdmissionQueueName string
	EventType          string
}

func LoadRelayConfig() *RelayConfig {
	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	queueName := os.Getenv("ADMISSION_QUEUE_NAME")
	if queueName == "" {
		queueName = "admissions"
	}

	eventType := os.Getenv("ADMISSION_EVENT_TYPE")
	if eventType == "" {
		eventType = "tenant.admitted"
	}

	return &RelayConfig{
		DatabaseURL:        dbURL,
		RabbitMQURL:        rabbitURL,
		AdmissionQueueName: queueName,
		EventType:          eventType,
	}
}
