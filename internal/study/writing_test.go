package study

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    TextStats
	}{
		{"empty", "", TextStats{Words: 0, Chars: 0, ReadingMinutes: 0}},
		{"short", "just a few words here", TextStats{Words: 5, Chars: 21, ReadingMinutes: 1}},
		{"unicode chars counted as runes", "héllo wörld", TextStats{Words: 2, Chars: 11, ReadingMinutes: 1}},
		{"exactly 200 words", strings.Repeat("word ", 200), TextStats{Words: 200, Chars: 1000, ReadingMinutes: 1}},
		{"201 words rounds up", strings.Repeat("word ", 201), TextStats{Words: 201, Chars: 1005, ReadingMinutes: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stats(tt.content))
		})
	}
}

func TestWriting_Save_NewAndReplace(t *testing.T) {
	w := NewWriting(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, w.Load(ctx))

	base := mustTime(t, "2026-08-28T12:00:00Z")
	require.NoError(t, w.Save(ctx, -1, "Essay", "first draft", base))
	require.NoError(t, w.Save(ctx, -1, "Poem", "roses", base.Add(time.Minute)))

	docs := w.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "Poem", docs[0].Title, "new documents prepend")

	require.NoError(t, w.Save(ctx, 1, "Essay", "second draft", base.Add(2*time.Minute)))
	doc, err := w.Document(1)
	require.NoError(t, err)
	assert.Equal(t, "second draft", doc.Content)
	assert.Len(t, w.Documents(), 2, "replacing does not grow the list")
}

func TestWriting_Save_EmptyTitleBecomesUntitled(t *testing.T) {
	w := NewWriting(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, w.Load(ctx))

	require.NoError(t, w.Save(ctx, -1, "", "body", mustTime(t, "2026-08-28T12:00:00Z")))
	doc, err := w.Document(0)
	require.NoError(t, err)
	assert.Equal(t, "Untitled", doc.Title)
}

func TestWriting_Save_IndexOutOfRange(t *testing.T) {
	w := NewWriting(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, w.Load(ctx))

	err := w.Save(ctx, 3, "t", "c", mustTime(t, "2026-08-28T12:00:00Z"))
	require.Error(t, err)
	assert.Empty(t, w.Documents())
}

func TestWriting_Delete(t *testing.T) {
	w := NewWriting(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, w.Load(ctx))

	require.NoError(t, w.Save(ctx, -1, "Doc", "body", mustTime(t, "2026-08-28T12:00:00Z")))
	require.NoError(t, w.Delete(ctx, 0))
	assert.Empty(t, w.Documents())

	require.Error(t, w.Delete(ctx, 0))
}
