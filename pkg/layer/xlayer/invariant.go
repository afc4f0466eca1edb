//go:build !vkperf_debug

package xlayer

const debugInvariants = false
