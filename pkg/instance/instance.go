package instance

import "os"

// GetID returns the process instance identifier used in startup logs.
// INSTANCE_ID wins over the platform-provided DYNO and HOSTNAME.
func GetID() string {
	for _, key := range []string{"INSTANCE_ID", "DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
