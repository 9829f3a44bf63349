// Package press is a modular DEFLATE-family compression system.
//
// Compression is split in two stages:
//   - a MatchFinder looks for repeated byte sequences (LZ77)
//   - an Encoder writes the matches in the final format
//
// Both stages speak the intermediate representation defined here, so a
// match finder written for one format can drive the encoder of another.
// The flate package provides hash-chain match finders tuned per level;
// snappy and lz4 provide encoders and block decoders for those formats.
package press

// A Match is the basic unit of LZ77 compression.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	// The matches cover src exactly. Distances may reach back into the
	// blocks passed to earlier calls.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be used with
	// a new stream.
	Reset()
}

// An Encoder encodes the data in its final format.
type Encoder interface {
	// Header appends the appropriate stream header to dst.
	Header(dst []byte) []byte

	// Encode appends the encoded format of src to dst, using the match
	// information from matches.
	Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte

	// Reset clears any internal state, preparing the Encoder to be used with
	// a new stream.
	Reset()
}

// AutoReset wraps a MatchFinder that can return references to data in
// previous blocks, and calls Reset before each block. It is useful for
// formats that don't allow matches to cross block boundaries.
type AutoReset struct {
	MatchFinder
}

func (a AutoReset) FindMatches(dst []Match, src []byte) []Match {
	a.Reset()
	return a.MatchFinder.FindMatches(dst, src)
}
