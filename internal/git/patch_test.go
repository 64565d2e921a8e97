package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHunks(t *testing.T) {
	t.Run("keeps origins and line endings", func(t *testing.T) {
		raw := "diff --git a/a.txt b/a.txt\n" +
			"index 1111111..2222222 100644\n" +
			"--- a/a.txt\n" +
			"+++ b/a.txt\n" +
			"@@ -1,2 +1,2 @@\n" +
			" one\n" +
			"-two\n" +
			"+TWO\n"

		hunks, err := ParseHunks(raw)
		require.NoError(t, err)
		require.Len(t, hunks, 1)

		h := hunks[0]
		require.Equal(t, 1, h.OldStart)
		require.Equal(t, 2, h.OldLines)
		require.Equal(t, 1, h.NewStart)
		require.Equal(t, 2, h.NewLines)
		require.Equal(t, "@@ -1,2 +1,2 @@", h.Header)
		require.Equal(t, []RawLine{
			{Origin: ' ', Content: "one\n"},
			{Origin: '-', Content: "two\n"},
			{Origin: '+', Content: "TWO\n"},
		}, h.Lines)
	})

	t.Run("drops newline for lines without one", func(t *testing.T) {
		raw := "diff --git a/a.txt b/a.txt\n" +
			"index 1111111..2222222 100644\n" +
			"--- a/a.txt\n" +
			"+++ b/a.txt\n" +
			"@@ -1 +1 @@\n" +
			"-old\n" +
			"\\ No newline at end of file\n" +
			"+new\n" +
			"\\ No newline at end of file\n"

		hunks, err := ParseHunks(raw)
		require.NoError(t, err)
		require.Len(t, hunks, 1)
		require.Equal(t, []RawLine{
			{Origin: '-', Content: "old"},
			{Origin: '+', Content: "new"},
		}, hunks[0].Lines)
	})

	t.Run("returns nothing for empty input", func(t *testing.T) {
		hunks, err := ParseHunks("")
		require.NoError(t, err)
		require.Empty(t, hunks)
	})
}

func TestWorktreePatchHunks(t *testing.T) {
	t.Run("modified file", func(t *testing.T) {
		patch, err := newWorktreePatch("a.txt", []byte("one\ntwo\nthree\n"), 0o100644, false, []byte("one\nTWO\nthree\n"))
		require.NoError(t, err)
		require.False(t, patch.binary)

		hunks, err := hunksFromPatch(patch, 3)
		require.NoError(t, err)
		require.Len(t, hunks, 1)
		require.Equal(t, []RawLine{
			{Origin: ' ', Content: "one\n"},
			{Origin: '-', Content: "two\n"},
			{Origin: '+', Content: "TWO\n"},
			{Origin: ' ', Content: "three\n"},
		}, hunks[0].Lines)
	})

	t.Run("new file", func(t *testing.T) {
		patch, err := newWorktreePatch("b.txt", nil, 0, false, []byte("x\ny\n"))
		require.NoError(t, err)

		hunks, err := hunksFromPatch(patch, 3)
		require.NoError(t, err)
		require.Len(t, hunks, 1)
		require.Equal(t, 0, hunks[0].OldLines)
		require.Equal(t, 2, hunks[0].NewLines)
		require.Equal(t, []RawLine{
			{Origin: '+', Content: "x\n"},
			{Origin: '+', Content: "y\n"},
		}, hunks[0].Lines)
	})

	t.Run("binary content has no chunks", func(t *testing.T) {
		patch, err := newWorktreePatch("c.bin", nil, 0, false, []byte{0x00, 0x01, 0x02})
		require.NoError(t, err)
		require.True(t, patch.binary)
		require.Empty(t, patch.Chunks())
	})
}

func TestTouchesPaths(t *testing.T) {
	require.True(t, touchesPaths("a", "b", nil))
	require.True(t, touchesPaths("a", "b", []string{"b"}))
	require.True(t, touchesPaths("a", "", []string{"a"}))
	require.False(t, touchesPaths("a", "b", []string{"c"}))
}
