package redis

import "fmt"

// documentKey returns the key holding the JSON document
func documentKey(prefix string) string {
	return fmt.Sprintf("%s:document", prefix)
}

// savedAtKey returns the key holding the time of the last save
func savedAtKey(prefix string) string {
	return fmt.Sprintf("%s:document:saved_at", prefix)
}
