package chat

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize    = 1500
	defaultChunkOverlap = 300
)

// Chunker splits raw text into bounded segments for embedding. Text is split
// on newlines first, the resulting pieces are packed greedily into chunks of
// at most Size bytes, and the trailing Overlap bytes of each chunk are
// carried over as the start of the next one so meaning survives chunk
// boundaries. Lines longer than Size are split mid-line. Both the overlap
// and mid-line cuts land on rune boundaries, so every chunk is valid UTF-8.
type Chunker struct {
	Size    int
	Overlap int
}

func NewChunker(size, overlap int) Chunker {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 {
		overlap = defaultChunkOverlap
	}
	if overlap >= size {
		// keep the default 1:5 ratio so packing always makes progress
		overlap = size / 5
	}
	return Chunker{Size: size, Overlap: overlap}
}

// Split is deterministic and keeps every input byte: concatenating the
// chunks with each one's carried-over prefix removed reproduces text exactly.
// Empty input yields no chunks.
func (c Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	var chunks []string
	cur := ""  // pending chunk: carried overlap followed by fresh content
	fresh := 0 // bytes of cur not carried over from the previous chunk

	emit := func(chunk string) {
		chunks = append(chunks, chunk)
		carry := chunk
		if len(carry) > c.Overlap {
			carry = carry[len(carry)-c.Overlap:]
		}
		// the carry must not start mid-rune
		for len(carry) > 0 && !utf8.RuneStart(carry[0]) {
			carry = carry[1:]
		}
		cur = carry
		fresh = 0
	}

	for _, piece := range strings.SplitAfter(text, "\n") {
		if piece == "" {
			continue
		}
		if len(cur)+len(piece) > c.Size && fresh > 0 {
			emit(cur)
		}
		cur += piece
		fresh += len(piece)
		for len(cur) > c.Size {
			// back the cut off to a rune boundary; a cut at or below the
			// overlap would not shrink the pending chunk
			cut := c.Size
			for cut > 0 && !utf8.RuneStart(cur[cut]) {
				cut--
			}
			if cut <= c.Overlap {
				cut = c.Size
			}
			rest := cur[cut:]
			emit(cur[:cut])
			cur += rest
			fresh = len(rest)
		}
	}
	if fresh > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}
