package pathname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamer_EncryptedPath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "with extension", input: "msg.txt", expected: "msg_encrypted.txt"},
		{name: "with directory", input: "dir/sub/msg.txt", expected: "dir/sub/msg_encrypted.txt"},
		{name: "absolute", input: "/tmp/msg.txt", expected: "/tmp/msg_encrypted.txt"},
		{name: "no extension", input: "msg", expected: "msg_encrypted"},
		{name: "double extension", input: "archive.tar.gz", expected: "archive.tar_encrypted.gz"},
		{name: "dotfile", input: ".notes", expected: ".notes_encrypted"},
	}

	namer := NewNamer()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, namer.EncryptedPath(tc.input))
		})
	}
}

func TestNamer_DecryptedPath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "replaces encrypted suffix", input: "msg_encrypted.txt", expected: "msg_decrypted.txt"},
		{name: "appends when no suffix", input: "msg.txt", expected: "msg_decrypted.txt"},
		{name: "suffix in the middle is kept", input: "my_encrypted_notes.txt", expected: "my_encrypted_notes_decrypted.txt"},
		{name: "directory names untouched", input: "x_encrypted/msg_encrypted.txt", expected: "x_encrypted/msg_decrypted.txt"},
		{name: "suffix only stem", input: "_encrypted.txt", expected: "_encrypted_decrypted.txt"},
		{name: "no extension", input: "msg_encrypted", expected: "msg_decrypted"},
	}

	namer := NewNamer()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, namer.DecryptedPath(tc.input))
		})
	}
}

func TestNamer_RoundTripNames(t *testing.T) {
	namer := NewNamer()
	encrypted := namer.EncryptedPath("notes/today.md")
	assert.Equal(t, "notes/today_encrypted.md", encrypted)
	assert.Equal(t, "notes/today_decrypted.md", namer.DecryptedPath(encrypted))
}

func TestNamer_CustomSuffixes(t *testing.T) {
	namer := Namer{EncryptedSuffix: ".enc", DecryptedSuffix: ".dec"}
	assert.NoError(t, namer.Validate())
	assert.Equal(t, "msg.enc.txt", namer.EncryptedPath("msg.txt"))
	assert.Equal(t, "msg.dec.txt", namer.DecryptedPath("msg.enc.txt"))
}

func TestNamer_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		namer   Namer
		wantErr error
	}{
		{name: "defaults", namer: NewNamer()},
		{name: "empty encrypted", namer: Namer{DecryptedSuffix: "_d"}, wantErr: ErrEmptySuffix},
		{name: "empty decrypted", namer: Namer{EncryptedSuffix: "_e"}, wantErr: ErrEmptySuffix},
		{name: "separator", namer: Namer{EncryptedSuffix: "/e", DecryptedSuffix: "_d"}, wantErr: ErrSuffixHasSeparator},
		{name: "same", namer: Namer{EncryptedSuffix: "_x", DecryptedSuffix: "_x"}, wantErr: ErrSameSuffix},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.namer.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
