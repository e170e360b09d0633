package curve

// Transcript accumulates 32-byte big-endian fields in the exact order an
// on-ledger Solidity verifier would via soliditySha3/solidityKeccak
// ("uint256", ...), per spec.md §4.1. Any proof verified on-ledger MUST
// build its challenge from this exact encoding.
type Transcript struct {
	buf []byte
}

// NewTranscript starts an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// AppendScalar appends a scalar's 32-byte big-endian encoding.
func (t *Transcript) AppendScalar(s *Scalar) *Transcript {
	b := s.Bytes32()
	t.buf = append(t.buf, b[:]...)
	return t
}

// AppendG1 appends a G1 point as two 32-byte big-endian words (x, y).
func (t *Transcript) AppendG1(p *G1) *Transcript {
	b := p.Bytes64()
	t.buf = append(t.buf, b[:]...)
	return t
}

// AppendAddress appends a 20-byte Ethereum-style address, left-padded to
// 32 bytes as solidityKeccak("uint256", uint256(addr)) would.
func (t *Transcript) AppendAddress(addr [20]byte) *Transcript {
	var padded [32]byte
	copy(padded[12:], addr[:])
	t.buf = append(t.buf, padded[:]...)
	return t
}

// Challenge hashes the accumulated fields to a scalar via H_s.
func (t *Transcript) Challenge() *Scalar {
	return HashToScalar(t.buf)
}
