//go:build !amd64

package simd

func init() {
	hasAVX2 = false
	initCapabilities()
}
