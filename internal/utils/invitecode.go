package utils

import "crypto/rand"

// Upper-case base-36 alphabet. Codes are typed and read aloud, so they are
// normalized to upper case on both generation and lookup.
const inviteCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// InviteCodeLength is the fixed length of group invite codes.
const InviteCodeLength = 8

// inviteCodeByteLimit is the largest multiple of the alphabet size that fits
// in a byte. Random bytes at or above it are redrawn so no alphabet character
// is over-represented.
const inviteCodeByteLimit = 256 - 256%len(inviteCodeAlphabet)

// appendInviteChars maps random bytes onto alphabet characters until dst
// holds n of them, rejecting bytes outside the uniform range.
func appendInviteChars(dst, src []byte, n int) []byte {
	for _, b := range src {
		if len(dst) >= n {
			break
		}
		if int(b) >= inviteCodeByteLimit {
			continue
		}
		dst = append(dst, inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)])
	}
	return dst
}

// GenerateInviteCode returns a random upper-case base-36 code of n
// characters. Uniqueness against stored codes is the caller's concern.
func GenerateInviteCode(n int) (string, error) {
	if n <= 0 {
		n = InviteCodeLength
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		out = appendInviteChars(out, buf, n)
	}
	return string(out), nil
}
