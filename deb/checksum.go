package deb

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// digestChunk is the read size for the checksum pass. All requested hashes
// are fed from the same 1 MiB reads, so the file is traversed exactly once
// no matter how many algorithms are requested.
const digestChunk = 1 << 20

// hashConstructors maps supported algorithm names to their constructors.
var hashConstructors = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
}

// DigestFile computes the requested checksums of the file at path in a
// single streaming pass and returns lower-case hexadecimal digests keyed by
// algorithm name. An unknown algorithm name is a FormatError.
func DigestFile(path string, algorithms []string) (map[string]string, error) {
	hashes := make(map[string]hash.Hash, len(algorithms))
	writers := make([]io.Writer, 0, len(algorithms))
	for _, name := range algorithms {
		constructor, ok := hashConstructors[name]
		if !ok {
			return nil, &FormatError{What: "checksum algorithm", Value: name}
		}
		h := constructor()
		hashes[name] = h
		writers = append(writers, h)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.CopyBuffer(io.MultiWriter(writers...), f, make([]byte, digestChunk)); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	digests := make(map[string]string, len(hashes))
	for name, h := range hashes {
		digests[name] = hex.EncodeToString(h.Sum(nil))
	}
	return digests, nil
}
