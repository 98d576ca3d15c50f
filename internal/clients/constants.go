package clients

import "time"

const (
	PROCESS_PATH = "/process"
	RESULT_PATH  = "/result/"
	HEALTH_PATH  = "/health"

	// MAX_RESPONSE_BYTES caps response bodies; PDF exports arrive base64 encoded.
	MAX_RESPONSE_BYTES = 32 << 20
	HEALTH_TIMEOUT     = 5 * time.Second
	USER_AGENT         = "blogdigest-client/1.0 (+https://github.com/srinijamadireddy19/Blog-Digest)"
)
