package runner

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var key = []byte("typedoc-source-digest-key-000032")

// Digest returns a hex encoded 64 bit highwayhash of data
func Digest(data []byte) (string, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return "", err
	}
	if _, err = hash.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash.Sum64()), nil
}
