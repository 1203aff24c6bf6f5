package crypto

import (
	"crypto/rand"
	"math/big"
)

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// Shuffle permutes xs in place with a Fisher-Yates walk over RandIntn.
func Shuffle[T any](xs []T) {
	for i := len(xs) - 1; i > 0; i-- {
		j := RandIntn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
