package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// KeyPrefix constants for different cache entries
const (
	PrefixHelp = "help"
)

// GenerateKey hashes the given parts into a stable key
func GenerateKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// GenerateKeyWithPrefix generates a cache key with a prefix
func GenerateKeyWithPrefix(prefix string, parts ...string) string {
	return prefix + ":" + GenerateKey(parts...)
}

// HelpKey identifies the help output of one CLI build: the checkout, its
// revision, the digest of the entry file and the arguments. The entry file
// is a build artifact, usually git-ignored, so the revision alone does not
// change on rebuild. The repository path is cleaned so "../cli" and
// "../cli/" share entries.
func HelpKey(repo, revision, entryDigest string, args []string) string {
	parts := append([]string{filepath.Clean(repo), revision, entryDigest}, args...)
	return GenerateKeyWithPrefix(PrefixHelp, parts...)
}

// FileDigest returns the hex sha256 of the file at path
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
