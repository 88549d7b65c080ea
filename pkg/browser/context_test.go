package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Registry bookkeeping is testable without a live browser: these tests build
// Contexts with bare tabs and never touch a page.

func registryWithTabs(titles ...string) *Context {
	c := &Context{}
	for _, title := range titles {
		c.tabs = append(c.tabs, &Tab{title: title})
	}
	return c
}

func TestCurrentTab_NilWhenNoTabs(t *testing.T) {
	c := registryWithTabs()
	assert.Nil(t, c.CurrentTab())
}

func TestCurrentTab_DefaultsToFirst(t *testing.T) {
	c := registryWithTabs("a", "b")
	require.NotNil(t, c.CurrentTab())
	assert.Equal(t, "a", c.CurrentTab().Title())
}

func TestSelectTab(t *testing.T) {
	c := registryWithTabs("a", "b", "c")

	require.NoError(t, c.SelectTab(2))
	assert.Equal(t, "c", c.CurrentTab().Title())

	assert.Error(t, c.SelectTab(-1))
	assert.Error(t, c.SelectTab(3))
	// Failed selection leaves the current tab unchanged.
	assert.Equal(t, "c", c.CurrentTab().Title())
}

func TestTabs_ReturnsCopy(t *testing.T) {
	c := registryWithTabs("a", "b")

	tabs := c.Tabs()
	require.Len(t, tabs, 2)
	tabs[0] = nil
	assert.NotNil(t, c.Tabs()[0])
}

func TestTabSource_CurrentTabIsUntypedNil(t *testing.T) {
	c := registryWithTabs()
	src := c.TabSource()

	// A nil *Tab wrapped in the interface would not compare equal to nil.
	assert.True(t, src.CurrentTab() == nil)
	assert.Empty(t, src.Tabs())
}

func TestTabSource_PreservesOrder(t *testing.T) {
	c := registryWithTabs("first", "second")
	src := c.TabSource()

	tabs := src.Tabs()
	require.Len(t, tabs, 2)
	assert.Equal(t, "first", tabs[0].Title())
	assert.Equal(t, "second", tabs[1].Title())
	assert.Equal(t, "first", src.CurrentTab().Title())
}

func TestTab_ModalAndConsoleBuffers(t *testing.T) {
	tab := &Tab{}

	assert.Empty(t, tab.ModalStates())
	assert.Empty(t, tab.ConsoleMessages())
	assert.Error(t, tab.HandleDialog(true, ""), "handling with no open dialog must fail")
}
