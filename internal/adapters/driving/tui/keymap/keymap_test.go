package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Equal(t, []string{"ctrl+c"}, km.Quit.Keys())
	assert.Equal(t, []string{"enter"}, km.Fetch.Keys())
	assert.Equal(t, []string{"ctrl+o"}, km.Open.Keys())
	assert.Equal(t, []string{"ctrl+p"}, km.Policy.Keys())
	assert.Equal(t, []string{"tab"}, km.History.Keys())
	assert.Equal(t, []string{"up", "k"}, km.Up.Keys())
	assert.Equal(t, []string{"down", "j"}, km.Down.Keys())
}

func TestKeyMap_HelpText(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, "open link", km.Open.Help().Desc)
	assert.Equal(t, "ctrl+o", km.Open.Help().Key)
	assert.Equal(t, "policy", km.Policy.Help().Desc)
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 2)
	assert.Equal(t, km.Quit.Keys(), help[0].Keys())
	assert.Equal(t, km.Help.Keys(), help[1].Keys())
}

func TestKeyMap_PreviewHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.PreviewHelp()

	require.Len(t, help, 4)
	assert.Equal(t, "fetch", help[0].Help().Desc)
	assert.Equal(t, "history", help[3].Help().Desc)
}

func TestKeyMap_HistoryHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.HistoryHelp()

	require.Len(t, help, 4)
	assert.Equal(t, "back", help[3].Help().Desc)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	require.Len(t, groups, 3)
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, 11, total)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("up", km.Up))
	assert.False(t, Matches("j", km.Up))
	assert.True(t, Matches("ctrl+o", km.Open))
	assert.False(t, Matches("", km.Open))
}
