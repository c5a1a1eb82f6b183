//go:build !amd64

package simd

// init selects the portable byte-wise scanner on non-amd64 architectures.
func init() {
	scanImpl = scanBytewise
}
