package params

const (
	// MinPrimeBits is the smallest bit length accepted when sampling primes and coprimes.
	MinPrimeBits = 8

	// DefaultRounds is the number of Miller-Rabin rounds performed by default.
	// A composite passes one round with probability at most 1/4, so 50 rounds bound
	// the false positive rate by 2⁻¹⁰⁰.
	DefaultRounds = 50

	// CoprimeSkipBits is the size above which a randomly sampled value is assumed
	// to be coprime to the target without running gcd.
	// Finding a value sharing a factor with such a target would amount to factoring it.
	CoprimeSkipBits = 1024

	// ChallengeBits is the length of the Fiat-Shamir challenge used in the
	// set membership proof. Each per-candidate challenge lives in [0, 2ᵀ).
	ChallengeBits  = 128
	ChallengeBytes = ChallengeBits / 8

	DefaultKeyBits = 2048
)
