package provider

import (
	"fmt"
	"math/rand"
	"net/http"

	"github.com/google/uuid"
)

// Rotating user agents for stats.nba.com requests. The stats API blocks
// clients that reuse an identical fingerprint too aggressively.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
}

// FingerprintHeaders generates a fresh request fingerprint: a rotated user
// agent and a unique request ID per call
func FingerprintHeaders() http.Header {
	headers := http.Header{}
	headers.Set("Host", "stats.nba.com")
	headers.Set("Connection", "keep-alive")
	headers.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	headers.Set("x-nba-stats-origin", "stats")
	headers.Set("x-nba-stats-token", "true")
	headers.Set("x-nba-stats-request-id", uuid.NewString())
	headers.Set("Referer", fmt.Sprintf("https://www.nba.com/player/%d", rand.Intn(9900)+100))
	headers.Set("Accept", "application/json, text/plain, */*")
	headers.Set("Accept-Language", "en-US,en;q=0.9")
	return headers
}
