package utils

import (
	"strings"
	"testing"
)

func TestGenerateInviteCode_Length(t *testing.T) {
	for _, n := range []int{4, 8, 12} {
		code, err := GenerateInviteCode(n)
		if err != nil {
			t.Fatalf("GenerateInviteCode(%d) error = %v", n, err)
		}
		if len(code) != n {
			t.Errorf("GenerateInviteCode(%d) returned %d chars: %q", n, len(code), code)
		}
	}
}

func TestGenerateInviteCode_Charset(t *testing.T) {
	const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	code, err := GenerateInviteCode(InviteCodeLength)
	if err != nil {
		t.Fatalf("GenerateInviteCode() error = %v", err)
	}

	for _, ch := range code {
		if !strings.ContainsRune(charset, ch) {
			t.Errorf("code %q contains unexpected character %q", code, ch)
		}
	}
}

func TestAppendInviteChars(t *testing.T) {
	// 0 and 36 both map to '0'; 35 is 'Z'; bytes at or above the uniform
	// limit (252) must be rejected, not wrapped onto the alphabet.
	got := appendInviteChars(nil, []byte{0, 1, 35, 36, 252, 253, 255}, 10)
	if string(got) != "01Z0" {
		t.Errorf("appendInviteChars = %q, want %q", got, "01Z0")
	}
}

func TestAppendInviteChars_StopsAtLength(t *testing.T) {
	got := appendInviteChars(nil, []byte{0, 1, 2, 3, 4}, 3)
	if string(got) != "012" {
		t.Errorf("appendInviteChars = %q, want %q", got, "012")
	}
}

func TestInviteCodeByteLimit(t *testing.T) {
	if inviteCodeByteLimit%len(inviteCodeAlphabet) != 0 {
		t.Errorf("inviteCodeByteLimit %d is not a multiple of the alphabet size %d",
			inviteCodeByteLimit, len(inviteCodeAlphabet))
	}
	if 256-inviteCodeByteLimit >= len(inviteCodeAlphabet) {
		t.Errorf("inviteCodeByteLimit %d rejects more bytes than necessary", inviteCodeByteLimit)
	}
}

func TestGenerateInviteCode_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode(InviteCodeLength)
		if err != nil {
			t.Fatalf("GenerateInviteCode() error = %v", err)
		}
		if seen[code] {
			t.Fatalf("duplicate code generated: %q", code)
		}
		seen[code] = true
	}
}
