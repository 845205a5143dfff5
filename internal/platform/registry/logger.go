package registry

import (
	"log"
	"net/url"
	"time"
)

func logRequest(method, path string, query url.Values) {
	if len(query) > 0 {
		log.Printf("[registry] %s %s params=%s", method, path, query.Encode())
	} else {
		log.Printf("[registry] %s %s", method, path)
	}
}

func logResponse(path string, statusCode int, duration time.Duration, size int) {
	log.Printf("[registry] %s status=%d duration=%dms bytes=%d",
		path, statusCode, duration.Milliseconds(), size)
}

func logError(path string, err error) {
	log.Printf("[registry] %s error: %v", path, err)
}
