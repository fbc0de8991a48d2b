package chat_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"pdfchat/src/core/chat"
)

// reconstruct verifies that every chunk after the first starts with the
// previous chunk's trailing overlap, strips those prefixes and glues the
// fresh content back together. The overlap is backed off to a rune boundary
// the same way the chunker carries it.
func reconstruct(t *testing.T, chunks []string, overlap int) string {
	t.Helper()
	if len(chunks) == 0 {
		return ""
	}
	out := chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		ov := overlap
		if len(prev) < ov {
			ov = len(prev)
		}
		for ov > 0 && !utf8.RuneStart(prev[len(prev)-ov]) {
			ov--
		}
		if !strings.HasPrefix(chunks[i], prev[len(prev)-ov:]) {
			t.Fatalf("chunk %d does not start with the trailing %d bytes of chunk %d", i, ov, i-1)
		}
		out += chunks[i][ov:]
	}
	return out
}

func TestSplitKeepsEveryByte(t *testing.T) {
	line := strings.Repeat("the quick brown fox ", 4) // 80 bytes

	tests := []struct {
		name string
		text string
	}{
		{
			name: "single short line",
			text: "hello world",
		},
		{
			name: "many lines",
			text: strings.Repeat(line+"\n", 100),
		},
		{
			name: "no trailing newline",
			text: strings.Repeat(line+"\n", 50) + line,
		},
		{
			name: "blank lines",
			text: "first\n\n\nsecond\n\nthird",
		},
		{
			name: "one line longer than the chunk size",
			text: strings.Repeat("a", 4000),
		},
		{
			name: "long line between short ones",
			text: "short\n" + strings.Repeat("b", 2000) + "\nshort again\n",
		},
		{
			name: "multi-byte lines",
			text: strings.Repeat(strings.Repeat("é", 700)+"\n", 10),
		},
		{
			name: "mixed ascii and cjk",
			text: strings.Repeat("日本語のテキスト and some ascii\n", 120),
		},
	}

	chunker := chat.NewChunker(1500, 300)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunker.Split(tt.text)
			if len(chunks) == 0 {
				t.Fatal("expected at least one chunk")
			}
			for i, chunk := range chunks {
				if len(chunk) > 1500 {
					t.Errorf("chunk %d has %d bytes, want <= 1500", i, len(chunk))
				}
				if !utf8.ValidString(chunk) {
					t.Errorf("chunk %d is not valid UTF-8: %q", i, chunk)
				}
			}
			if got := reconstruct(t, chunks, 300); got != tt.text {
				t.Errorf("reconstructed text differs from input: got %d bytes, want %d", len(got), len(tt.text))
			}
		})
	}
}

func TestSplitEmptyInput(t *testing.T) {
	if chunks := chat.NewChunker(1500, 300).Split(""); chunks != nil {
		t.Errorf("Split(\"\") = %v, want nil", chunks)
	}
}

func TestSplitSmallChunker(t *testing.T) {
	chunker := chat.NewChunker(20, 5)
	text := "aaaa\nbbbb\ncccc\ndddd\neeee\nffff\n"
	chunks := chunker.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 20 {
			t.Errorf("chunk %d has %d bytes, want <= 20", i, len(chunk))
		}
	}
	if got := reconstruct(t, chunks, 5); got != text {
		t.Errorf("reconstructed %q, want %q", got, text)
	}
}

func TestSplitMultiByteMidLine(t *testing.T) {
	// 3-byte runes with a chunk size that is not a multiple of 3 force every
	// mid-line cut and overlap carry off a byte-aligned boundary
	chunker := chat.NewChunker(20, 5)
	text := strings.Repeat("世", 50)
	chunks := chunker.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 20 {
			t.Errorf("chunk %d has %d bytes, want <= 20", i, len(chunk))
		}
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, chunk)
		}
	}
	if got := reconstruct(t, chunks, 5); got != text {
		t.Errorf("reconstructed %q, want %q", got, text)
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("some repeated content\n", 200)
	chunker := chat.NewChunker(1500, 300)
	first := chunker.Split(text)
	second := chunker.Split(text)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestNewChunkerDefaults(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
		wantSize      int
		wantOverlap   int
	}{
		{name: "zero values", size: 0, overlap: -1, wantSize: 1500, wantOverlap: 300},
		{name: "overlap larger than size", size: 10, overlap: 50, wantSize: 10, wantOverlap: 2},
		{name: "explicit values kept", size: 800, overlap: 100, wantSize: 800, wantOverlap: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := chat.NewChunker(tt.size, tt.overlap)
			if c.Size != tt.wantSize || c.Overlap != tt.wantOverlap {
				t.Errorf("NewChunker(%d, %d) = {%d %d}, want {%d %d}",
					tt.size, tt.overlap, c.Size, c.Overlap, tt.wantSize, tt.wantOverlap)
			}
		})
	}
}
