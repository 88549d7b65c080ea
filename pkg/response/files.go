package response

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entrhq/webpilot/pkg/config"
)

// sessionEnvVar names the environment variable carrying an external session
// identifier. When absent, the literal "default" is used.
const sessionEnvVar = "WEBPILOT_SESSION_ID"

const randAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomID returns n characters of filesystem-safe randomness. Together with
// the kind tag and the day bucket it guarantees that no two writes in the
// same process collide, so no locking is needed on the shared output
// directory.
func randomID(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(fmt.Sprintf("response: reading random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = randAlphabet[int(b)%len(randAlphabet)]
	}
	return string(buf)
}

// sessionID returns the external session identifier for file naming.
func sessionID() string {
	if id := os.Getenv(sessionEnvVar); id != "" {
		return id
	}
	return "default"
}

// auxFileName produces a unique auxiliary file name for one content kind,
// following the pw-s:<session>-t:<dayBucket>-<kind>-id:<random>.txt contract.
// The time component is the current unix time floored to a 24-hour boundary.
func auxFileName(kind FileKind, now time.Time) string {
	dayBucket := now.Unix() / 86400 * 86400
	return fmt.Sprintf("pw-s:%s-t:%d-%s-id:%s.txt", sessionID(), dayBucket, kind, randomID(5))
}

// writeAuxFile persists content to a freshly named file in the configured
// output directory and returns its path. The file is fully written when the
// path is returned; any filesystem failure is propagated to the caller and
// fails the enclosing tool invocation, because a reported path that does not
// exist is a worse failure mode than an explicit error.
func writeAuxFile(cfg *config.Config, kind FileKind, content string) (string, error) {
	dir, err := cfg.EnsureOutputDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, auxFileName(kind, time.Now()))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s output file: %w", kind, err)
	}
	return path, nil
}

// fileHint is the usage line echoed alongside every written file basename.
func fileHint(path string) string {
	return fmt.Sprintf("Saved to %s (inspect with head, grep, tail or cat)", filepath.Base(path))
}
