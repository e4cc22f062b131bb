package index

import (
	"context"
	"strings"
	"testing"

	"github.com/biogo/hts/fai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, data string) *Index {
	t.Helper()
	ix, err := Build(context.Background(), NewScanner(strings.NewReader(data)))
	require.NoError(t, err)
	return ix
}

func TestBuildTwoRecords(t *testing.T) {
	ix := build(t, ">seq1 desc\nACGTACGT\nACGT\n>seq2\nTTTT\n")
	require.Equal(t, 2, ix.Len())

	s1, ok := ix.ByName("seq1")
	require.True(t, ok)
	assert.Equal(t, Record{ID: 0, Name: "seq1", Description: "desc", Offset: 11, LineLength: 8, LineBytes: 9, Length: 12}, *s1)

	s2, ok := ix.ByID(1)
	require.True(t, ok)
	assert.Equal(t, Record{ID: 1, Name: "seq2", Offset: 31, LineLength: 4, LineBytes: 5, Length: 4}, *s2)
	assert.Equal(t, []string{"seq1", "seq2"}, ix.Names())
}

func TestBuildSharesRecords(t *testing.T) {
	ix := build(t, ">a\nAC\n>b\nGT\n")
	for _, name := range []string{"a", "b"} {
		byName, _ := ix.ByName(name)
		byID, _ := ix.ByID(byName.ID)
		assert.Same(t, byName, byID)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	ix := build(t, "")
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.Names())
}

func TestBuildHeaderWithoutSequence(t *testing.T) {
	ix := build(t, ">empty\n>seq2\nAAAA\n")
	e, ok := ix.ByName("empty")
	require.True(t, ok)
	assert.Equal(t, 0, e.Length)
	assert.Equal(t, 0, e.LineLength)
	assert.Equal(t, 0, e.ID)

	s2, _ := ix.ByName("seq2")
	assert.Equal(t, 1, s2.ID)
	assert.Equal(t, int64(13), s2.Offset)
	assert.Equal(t, 4, s2.Length)
}

func TestBuildDescriptionCollapsesWhitespace(t *testing.T) {
	ix := build(t, ">chr1  Homo sapiens\tchromosome 1\nAC\n")
	r, _ := ix.ByName("chr1")
	assert.Equal(t, "Homo sapiens chromosome 1", r.Description)
}

func TestBuildDuplicateNamesLastWins(t *testing.T) {
	ix := build(t, ">x\nAAAA\n>x\nCC\n")
	require.Equal(t, 2, ix.Len())
	r, _ := ix.ByName("x")
	assert.Equal(t, 1, r.ID)
	assert.Equal(t, 2, r.Length)
	first, _ := ix.ByID(0)
	assert.Equal(t, 4, first.Length)
	assert.Equal(t, []string{"x"}, ix.Duplicates())
}

func TestBuildNoTrailingNewline(t *testing.T) {
	ix := build(t, ">s\nACGT\nAC")
	r, _ := ix.ByName("s")
	assert.Equal(t, 6, r.Length)
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		line int
	}{
		{"empty name", ">\nACGT\n", 1},
		{"blank name", ">   \nACGT\n", 1},
		{"crlf", ">s\r\nACGT\r\n", 1},
		{"wider line", ">s\nACGT\nACGTA\n", 3},
		{"line after short", ">s\nACGT\nAC\nACGT\n", 4},
		{"data before header", "ACGT\n>s\nAC\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(context.Background(), NewScanner(strings.NewReader(tc.in)))
			require.ErrorIs(t, err, ErrParse)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestBuildTrailingBlankLineAllowed(t *testing.T) {
	ix := build(t, ">s\nACGT\nAC\n\n>t\nA\n")
	s, _ := ix.ByName("s")
	assert.Equal(t, 6, s.Length)
	tt, _ := ix.ByName("t")
	assert.Equal(t, int64(15), tt.Offset)
}

func TestBuildCancelled(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(">s\n")
	for i := 0; i < 5000; i++ {
		sb.WriteString("ACGT\n")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, NewScanner(strings.NewReader(sb.String())))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildMatchesBiogoFAI(t *testing.T) {
	data := ">chr1 first\nACGTACGTAC\nACGTACGTAC\nACG\n>chr2\nTTTTT\nTT\n>chr3 third one\nGGGGGGGGGGGG\n"
	ix := build(t, data)

	want, err := fai.NewIndex(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, want, ix.Len())
	for _, r := range ix.Records() {
		w, ok := want[r.Name]
		require.True(t, ok, r.Name)
		assert.Equal(t, w.Length, r.Length, r.Name)
		assert.Equal(t, w.Start, r.Offset, r.Name)
		assert.Equal(t, w.BasesPerLine, r.LineLength, r.Name)
		assert.Equal(t, w.BytesPerLine, r.LineBytes, r.Name)
	}
}
