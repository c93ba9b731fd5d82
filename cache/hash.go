package cache

import (
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Key hashes file content together with the settings that affect its rewrite
func Key(data []byte, settings ...string) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	for _, setting := range settings {
		if _, err = hash.Write([]byte(setting)); err != nil {
			return 0, err
		}
		if _, err = hash.Write([]byte{0}); err != nil {
			return 0, err
		}
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
