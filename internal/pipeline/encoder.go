package pipeline

import "encoding/base64"

// EncodeRaw returns the standard base64 form of the complete byte stream.
func EncodeRaw(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeRaw reverses EncodeRaw.
func DecodeRaw(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
