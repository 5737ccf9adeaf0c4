package node

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Node identifies this monitor process in published payloads, health
// responses and telemetry resources.
type Node struct {
	ID         string
	Hostname   string
	Version    string
	CommitHash string
	StartedAt  time.Time
}

// Set at build time with -ldflags.
var Version = "development"
var CommitHash = "unknown"

var (
	current     *Node
	currentOnce sync.Once
)

// GetNodeInfo returns the node information. It is computed once per process.
func GetNodeInfo() *Node {
	currentOnce.Do(func() {
		current = &Node{
			ID:         uuid.New().String(),
			Hostname:   hostname(),
			Version:    Version,
			CommitHash: CommitHash,
			StartedAt:  time.Now(),
		}
	})
	return current
}

func (n *Node) Uptime() time.Duration {
	return time.Since(n.StartedAt)
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "localhost"
	}
	return name
}
