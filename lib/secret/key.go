// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrClosed is returned by Key operations after Close.
var ErrClosed = errors.New("secret: key is closed")

// Key is a signing secret held outside the Go heap. The zero value is
// not usable; construct with NewKey. A Key must not be copied.
type Key struct {
	mu     sync.Mutex
	region []byte
	length int
	closed bool
}

// NewKey copies material into a locked, non-dumpable mmap region and
// zeroes the caller's slice.
func NewKey(material []byte) (*Key, error) {
	if len(material) == 0 {
		return nil, fmt.Errorf("secret: key material is empty")
	}

	region, err := unix.Mmap(-1, 0, len(material), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(region)
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP): %w", err)
	}

	copy(region, material)
	Zero(material)

	return &Key{region: region, length: len(material)}, nil
}

// NewKeyFromString is NewKey for string material. The string itself
// stays on the heap until collected; use it only at configuration
// boundaries where the secret already arrived as a string.
func NewKeyFromString(material string) (*Key, error) {
	return NewKey([]byte(material))
}

// Len returns the key length in bytes.
func (k *Key) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.length
}

// Sign returns HMAC-SHA256(key, data).
func (k *Key) Sign(data []byte) ([]byte, error) {
	var sum []byte
	err := k.With(func(material []byte) error {
		mac := hmac.New(sha256.New, material)
		mac.Write(data)
		sum = mac.Sum(nil)
		return nil
	})
	return sum, err
}

// With calls fn with the key material. The slice aliases the protected
// region and must not be retained after fn returns.
func (k *Key) With(fn func(material []byte) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return ErrClosed
	}
	return fn(k.region[:k.length])
}

// Close zeroes, unlocks, and unmaps the region. Idempotent.
func (k *Key) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil
	}
	k.closed = true

	Zero(k.region)

	var firstError error
	if err := unix.Munlock(k.region); err != nil {
		firstError = fmt.Errorf("secret: munlock: %w", err)
	}
	if err := unix.Munmap(k.region); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap: %w", err)
	}
	k.region = nil
	return firstError
}

// Zero overwrites data with zeros.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}
