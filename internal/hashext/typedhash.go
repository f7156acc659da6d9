// Copyright 2024 The OSS Rebuild Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hashext provides extensions to the standard crypto/hash package.
package hashext

import (
	"crypto"
	"encoding/hex"
	"hash"
	"io"

	"github.com/pkg/errors"
)

// ChunkSize is the read size used when streaming content into a hash.
const ChunkSize = 64 << 10

// TypedHash is a hash.Hash annotated with its algorithm.
type TypedHash struct {
	hash.Hash
	Algorithm crypto.Hash
}

// NewTypedHash constructs a new TypedHash.
func NewTypedHash(algo crypto.Hash) TypedHash {
	return TypedHash{Hash: algo.New(), Algorithm: algo}
}

// ReadFrom streams r into the hash in ChunkSize reads so memory use does not
// grow with the size of the content.
func (t TypedHash) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, ChunkSize)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			t.Hash.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// HexSum returns the lowercase hex encoding of the current digest.
func (t TypedHash) HexSum() string {
	return hex.EncodeToString(t.Sum(nil))
}

// HexDigest hashes the full content of r with algo and returns it hex-encoded.
func HexDigest(algo crypto.Hash, r io.Reader) (string, error) {
	if !algo.Available() {
		return "", errors.Errorf("hash algorithm unavailable: %v", algo)
	}
	th := NewTypedHash(algo)
	if _, err := th.ReadFrom(r); err != nil {
		return "", errors.Wrap(err, "reading content")
	}
	return th.HexSum(), nil
}
