package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is everything the server consumes from the environment: where to
// bind each channel and where the question file lives.
type Config struct {
	Host         string
	TCPPort      int
	UDPPort      int
	QuestionFile string
}

// Load reads and validates the environment. Invalid values are fatal at
// startup; nothing here is re-read once the server is running.
func Load() (Config, error) {
	tcpPort, err := getEnvAsPort("TRIVIA_TCP_PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	udpPort, err := getEnvAsPort("TRIVIA_UDP_PORT", 9090)
	if err != nil {
		return Config{}, err
	}
	if tcpPort == udpPort {
		return Config{}, fmt.Errorf("reliable and unreliable channels cannot share port %d", tcpPort)
	}

	return Config{
		Host:         getEnv("TRIVIA_HOST", "0.0.0.0"),
		TCPPort:      tcpPort,
		UDPPort:      udpPort,
		QuestionFile: getEnv("TRIVIA_QUESTIONS", "config/questions.yaml"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsPort(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	p, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s = %q, want a port number: %w", key, value, err)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("%s = %d, want 1-65535", key, p)
	}
	return p, nil
}
