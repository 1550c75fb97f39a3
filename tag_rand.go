package imap

import "math/rand"

// alphanumeric is the alphabet FreshTag draws from, mirroring the
// "Alphanumeric" distribution original IMAP client libraries use for
// generating command tags.
const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomAlphanumeric returns an n-character string drawn from
// alphanumeric using the package-global, auto-seeded math/rand source.
// There is no security requirement on command tags: they only need to
// be unique enough to pair a command with its tagged response.
func randomAlphanumeric(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphanumeric[rand.Intn(len(alphanumeric))]
	}
	return string(buf)
}
