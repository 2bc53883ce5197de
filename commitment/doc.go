// Package commitment implements hash-based commit-and-open.
//
// A commitment to message m with blinding factor r is H(m, r) for a
// collision-resistant hash H. It is computationally binding (the committer
// cannot open the digest to a different message) and hiding as long as r has
// enough entropy, which is why blinding factors are drawn with
// [SampleBlinding] at [SecurityBits].
//
//	r, _ := commitment.SampleBlinding(rand.Reader, commitment.SecurityBits)
//	digest := commitment.Commit(commitment.SHA256Hasher{}, msg, r)
//	// ... later, after every party has committed ...
//	ok := commitment.Verify(commitment.SHA256Hasher{}, digest, msg, r)
package commitment
