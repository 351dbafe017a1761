package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "nested", "pactlgod.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestNew_Migrations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pactlgod.db")

	first, err := New(path)
	require.NoError(t, err)
	version, err := first.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)
	require.NoError(t, first.UpsertPreset(&PresetRecord{Name: "kept", Channels: 2}))
	require.NoError(t, first.Close())

	// reopening applies nothing twice and keeps data
	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	version, err = second.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)
	assert.Equal(t, path, second.Path())

	p, err := second.GetPreset("kept")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNew_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := New("")
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	t.Parallel()

	database := newTestDB(t)

	rate := 48000
	format := "s16le"
	require.NoError(t, database.UpsertPreset(&PresetRecord{
		Name:        "podcast",
		Channels:    1,
		ChannelMap:  "mono",
		Description: "Podcast Mic",
		Rate:        &rate,
		Format:      &format,
	}))
	require.NoError(t, database.UpsertPreset(&PresetRecord{Name: "alpha", Channels: 2}))

	p, err := database.GetPreset("podcast")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.Channels)
	assert.Equal(t, "mono", p.ChannelMap)
	assert.Equal(t, "Podcast Mic", p.Description)
	require.NotNil(t, p.Rate)
	assert.Equal(t, 48000, *p.Rate)
	require.NotNil(t, p.Format)
	assert.Equal(t, "s16le", *p.Format)
	assert.Nil(t, p.Properties)
	assert.False(t, p.Created.IsZero())

	t.Run("upsert replaces fields and keeps created", func(t *testing.T) {
		require.NoError(t, database.UpsertPreset(&PresetRecord{Name: "podcast", Channels: 2, ChannelMap: "front-left,front-right"}))
		updated, err := database.GetPreset("podcast")
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Channels)
		assert.Nil(t, updated.Rate)
		assert.Equal(t, p.ID, updated.ID)
		assert.True(t, updated.Created.Equal(p.Created))
	})

	t.Run("list sorted by name", func(t *testing.T) {
		all, err := database.ListPresets()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "alpha", all[0].Name)
		assert.Equal(t, "podcast", all[1].Name)
	})

	t.Run("missing", func(t *testing.T) {
		missing, err := database.GetPreset("nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("delete", func(t *testing.T) {
		found, err := database.DeletePreset("alpha")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = database.DeletePreset("alpha")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestEvents(t *testing.T) {
	t.Parallel()

	database := newTestDB(t)

	require.NoError(t, database.RecordEvent(ActionCreate, "foo", "pactl load-module module-null-sink sink_name=foo", 0, ""))
	require.NoError(t, database.RecordEvent(ActionUnload, "42", "pactl unload-module 42", 1, "Failure: No such entity"))
	require.NoError(t, database.RecordEvent(ActionCreate, "bar", "pactl load-module module-null-sink sink_name=bar", 0, ""))

	events, err := database.GetRecentEvents(0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "bar", events[0].Target, "newest first")
	assert.Equal(t, "foo", events[2].Target)

	failed := events[1]
	assert.Equal(t, ActionUnload, failed.Action)
	assert.Equal(t, 1, failed.ExitCode)
	assert.Equal(t, "Failure: No such entity", failed.Output)
	assert.False(t, failed.Timestamp.IsZero())

	limited, err := database.GetRecentEvents(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	creates, err := database.GetEventsByAction(ActionCreate, 10)
	require.NoError(t, err)
	require.Len(t, creates, 2)
	for _, e := range creates {
		assert.Equal(t, ActionCreate, e.Action)
	}

	none, err := database.GetEventsByAction(ActionUnloadAll, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
