package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/webpilot/pkg/config"
)

func TestNewFilePolicy_SelectsStrategyFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.FileRouting = config.RoutingSize
	_, ok := NewFilePolicy(cfg).(sizeGatedPolicy)
	assert.True(t, ok)

	cfg.FileRouting = config.RoutingKind
	_, ok = NewFilePolicy(cfg).(kindGatedPolicy)
	assert.True(t, ok)
}

func TestSizeGatedPolicy(t *testing.T) {
	small := strings.Repeat("a", SizeThreshold)
	large := small + "a"

	enabled := sizeGatedPolicy{enabled: true}
	assert.False(t, enabled.RouteToFile(KindConsole, small))
	assert.True(t, enabled.RouteToFile(KindConsole, large))
	assert.False(t, enabled.SuppressSummaries())

	disabled := sizeGatedPolicy{enabled: false}
	assert.False(t, disabled.RouteToFile(KindConsole, large))
	assert.False(t, disabled.SuppressSummaries())
}

func TestKindGatedPolicy(t *testing.T) {
	enabled := kindGatedPolicy{enabled: true}
	assert.True(t, enabled.RouteToFile(KindSnapshot, "x"), "routes regardless of size")
	assert.True(t, enabled.SuppressSummaries())

	disabled := kindGatedPolicy{enabled: false}
	assert.False(t, disabled.RouteToFile(KindSnapshot, strings.Repeat("x", 10000)))
	assert.False(t, disabled.SuppressSummaries(), "behaves as if file routing did not exist")
}
