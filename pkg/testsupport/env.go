package testsupport

import (
	"os"
	"testing"
)

// EnvKeys are the environment variables the configuration reads
var EnvKeys = []string{"SITE_DIR", "BASE_PATH", "BUCKET_NAME", "PORT", "CACHE_TTL", "LOG_LEVEL", "LOG_FORMAT", "VIEWS_DIR"}

// ClearEnv unsets the configuration variables for the duration of the test
func ClearEnv(t *testing.T) {
	t.Helper()
	for _, key := range EnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
