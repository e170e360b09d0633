package curve

import "math/big"

// H1, H2 are the second, independently chosen generator pair used
// exclusively for key-share commitments (spec.md §3). They have no known
// discrete log relative to G1/G2. Values match the deployed ETHDKG
// contract's constants (see original_source/ethdkg/crypto.py).
var (
	h1X, _ = new(big.Int).SetString("9727523064272218541460723335320998459488975639302513747055235660443850046724", 10)
	h1Y, _ = new(big.Int).SetString("5031696974169251245229961296941447383441169981934237515842977230762345915487", 10)

	h2XImag, _ = new(big.Int).SetString("14120302265976430476300156362541817133873389322564306174224598966336605751189", 10)
	h2XReal, _ = new(big.Int).SetString("9110522554455888802745409460679507850660709404525090688071718755658817738702", 10)
	h2YImag, _ = new(big.Int).SetString("21550838471174089343030649382112381550278244756451022825185015902639198926789", 10)
	h2YReal, _ = new(big.Int).SetString("8015061597608194114184122605728732604411275728909990814600934336120589400179", 10)
)

// H1 returns a fresh copy of the H1 key-share generator.
func H1() *G1 {
	return G1FromXY(h1X, h1Y)
}

// H2 returns a fresh copy of the H2 key-share generator.
func H2() *G2 {
	return G2FromFq2(h2XImag, h2XReal, h2YImag, h2YReal)
}
