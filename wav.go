package wav

import "bytes"

// trimTrailingNull drops the null terminator (and any null padding after it)
// from an INFO text value.
func trimTrailingNull(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}
