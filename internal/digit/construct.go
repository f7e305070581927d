package digit

// Before returns the shortest-prefix digits that sort strictly before seq.
// Past the last digit the implicit terminator is the first byte that can be
// decremented, so the scan always ends. The result never aliases seq.
func Before(seq []byte) []byte {
	for i, b := range seq {
		if b > Terminator {
			// the implicit terminator at i is already smaller than b
			return clone(seq[:i])
		}
		if b > 0 {
			res := clone(seq[:i+1])
			res[i]--
			return res
		}
	}
	return append(clone(seq), Terminator-1)
}

// After is the mirror of Before.
func After(seq []byte) []byte {
	for i, b := range seq {
		if b < Terminator {
			return clone(seq[:i])
		}
		if b < 0xff {
			res := clone(seq[:i+1])
			res[i]++
			return res
		}
	}
	return append(clone(seq), Terminator+1)
}

func clone(b []byte) []byte {
	res := make([]byte, len(b), len(b)+1)
	copy(res, b)
	return res
}
