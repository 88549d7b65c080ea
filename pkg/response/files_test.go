package response

import (
	"fmt"
	"os"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuxFileName_FollowsContract(t *testing.T) {
	t.Setenv(sessionEnvVar, "")
	now := time.Date(2026, 8, 30, 15, 42, 7, 0, time.UTC)
	name := auxFileName(KindConsole, now)

	pattern := regexp.MustCompile(`^pw-s:default-t:(\d+)-console-id:[a-z0-9]{5}\.txt$`)
	match := pattern.FindStringSubmatch(name)
	require.NotNil(t, match, "unexpected file name %q", name)

	// The time component is floored to a 24-hour boundary.
	var bucket int64
	_, err := fmt.Sscanf(match[1], "%d", &bucket)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bucket%86400)
	assert.LessOrEqual(t, bucket, now.Unix())
	assert.Greater(t, bucket, now.Unix()-86400)
}

func TestAuxFileName_UsesSessionEnv(t *testing.T) {
	t.Setenv(sessionEnvVar, "run-17")
	name := auxFileName(KindSnapshot, time.Now())
	assert.Contains(t, name, "pw-s:run-17-t:")
	assert.Contains(t, name, "-snapshot-id:")
}

func TestAuxFileName_NoCollisionsAcrossConcurrentWriters(t *testing.T) {
	const perWriter = 25
	const writers = 4

	var mu sync.Mutex
	seen := make(map[string]struct{}, perWriter*writers)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWriter)
			for i := 0; i < perWriter; i++ {
				local = append(local, auxFileName(KindNetwork, time.Now()))
			}
			mu.Lock()
			defer mu.Unlock()
			for _, name := range local {
				seen[name] = struct{}{}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, perWriter*writers, "same session and day bucket must still never collide")
}

func TestWriteAuxFile_ContentPersistedBeforePathReturned(t *testing.T) {
	cfg := testConfig(t)
	content := "network dump\nline two"

	path, err := writeAuxFile(cfg, KindNetwork, content)
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(onDisk))
}

func TestRandomID_LengthAndAlphabet(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]{5}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, randomID(5))
	}
}

func TestFileHint_UsesBasenameOnly(t *testing.T) {
	hint := fileHint("/var/tmp/out/pw-s:default-t:0-console-id:ab1cd.txt")
	assert.Contains(t, hint, "pw-s:default-t:0-console-id:ab1cd.txt")
	assert.NotContains(t, hint, "/var/tmp")
}
