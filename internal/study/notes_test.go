package study

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes_Add_PrependsNewestFirst(t *testing.T) {
	n := NewNotes(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, n.Load(ctx))

	base := mustTime(t, "2026-08-28T11:00:00Z")
	require.NoError(t, n.Add(ctx, "first", "older note", base))
	require.NoError(t, n.Add(ctx, "second", "newer note", base.Add(time.Minute)))

	notes := n.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Title)
	assert.Equal(t, "first", notes[1].Title)
}

func TestNotes_UpdateAndDelete_ByIndex(t *testing.T) {
	n := NewNotes(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, n.Load(ctx))

	base := mustTime(t, "2026-08-28T11:00:00Z")
	require.NoError(t, n.Add(ctx, "keep", "body", base))
	require.NoError(t, n.Add(ctx, "edit", "draft", base.Add(time.Minute)))

	require.NoError(t, n.Update(ctx, 0, "edit", "final", base.Add(2*time.Minute)))
	note, err := n.Note(0)
	require.NoError(t, err)
	assert.Equal(t, "final", note.Content)

	require.NoError(t, n.Delete(ctx, 0))
	notes := n.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "keep", notes[0].Title)
}

func TestNotes_IndexOutOfRange(t *testing.T) {
	n := NewNotes(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, n.Load(ctx))

	now := mustTime(t, "2026-08-28T11:00:00Z")
	require.Error(t, n.Update(ctx, 0, "t", "c", now))
	require.Error(t, n.Delete(ctx, -1))
	_, err := n.Note(5)
	require.Error(t, err)
}

func TestNotes_Search_CaseInsensitive(t *testing.T) {
	n := NewNotes(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, n.Load(ctx))

	base := mustTime(t, "2026-08-28T11:00:00Z")
	require.NoError(t, n.Add(ctx, "Biology", "the Krebs cycle", base))
	require.NoError(t, n.Add(ctx, "History", "french revolution", base.Add(time.Minute)))
	require.NoError(t, n.Add(ctx, "Chemistry", "krebs appears here too", base.Add(2*time.Minute)))

	matches := n.Search("KREBS")
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, "Chemistry", matches[0].Note.Title)
	assert.Equal(t, 2, matches[1].Index)
	assert.Equal(t, "Biology", matches[1].Note.Title)

	assert.Empty(t, n.Search("calculus"))
}
