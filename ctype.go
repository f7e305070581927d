package go_fractional_index

// IScheme bundles the operations of one key scheme. Both the current scheme
// (FractionalIndex) and the legacy one (zeno.ZenoIndex) implement it; the
// type parameter keeps keys of different schemes from being mixed.
type IScheme[K any] interface {
	// Default returns the anchor key, the one to use when there is no
	// reference key yet.
	Default() K
	// NewBefore returns a key strictly less than ref.
	NewBefore(ref K) K
	// NewAfter returns a key strictly greater than ref.
	NewAfter(ref K) K
	// NewBetween returns a key strictly between low and high. It fails with
	// ErrOrder unless low < high.
	NewBetween(low, high K) (K, error)
	// Compare returns -1, 0, or +1 depending on whether a is 'less than',
	// 'equal to' or 'greater than' b.
	Compare(a, b K) int

	Encode(k K) []byte
	Decode(b []byte) (K, error)
	EncodeString(k K) string
	DecodeString(s string) (K, error)
}

// IComparer defines a total ordering over the space of encoded []byte keys.
// It follows the comparer contract of the sstable library so that byte forms
// can be used as table keys directly.
type IComparer interface {
	// Compare returns -1, 0, or +1 depending on whether a is 'less than',
	// 'equal to' or 'greater than' b.
	Compare(a, b []byte) int

	// Separator appends a sequence of bytes x to dst such that a <= x && x < b,
	// where 'less than' is consistent with Compare.
	Separator(dst, a, b []byte) []byte

	// Successor appends a sequence of bytes x to dst such that x >= b, where
	// 'less than' is consistent with Compare.
	Successor(dst, b []byte) []byte
}
