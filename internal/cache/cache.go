// Package cache keeps short-lived JSON snapshots of backend responses on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/where"
	"github.com/spf13/afero"
)

// TTL is how long a snapshot stays fresh.
const TTL = 10 * time.Minute

// Key derives a stable file name from its parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

func path(key string) string {
	return filepath.Join(where.Catalog(), key+".json")
}

func fresh(info os.FileInfo) bool {
	return time.Since(info.ModTime()) <= TTL
}

// Read decodes a fresh snapshot into target and reports whether it did.
func Read(key string, target any) bool {
	p := path(key)

	info, err := filesystem.API().Stat(p)
	if err != nil || !fresh(info) {
		return false
	}

	data, err := filesystem.API().ReadFile(p)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.Warnf("corrupted snapshot %s: %s", key, err)
		return false
	}

	return true
}

// Write stores data under key, replacing any previous snapshot.
func Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return filesystem.WriteAtomic(path(key), encoded)
}

// Clear removes every snapshot.
func Clear() error {
	return filesystem.API().RemoveAll(where.Catalog())
}

// CollectGarbage removes stale snapshots and returns how many were removed.
func CollectGarbage() int {
	var removed int

	_ = afero.Walk(filesystem.API().Fs, where.Catalog(), func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if !fresh(info) {
			if filesystem.API().Remove(p) == nil {
				removed++
			}
		}

		return nil
	})

	if removed > 0 {
		log.Infof("removed %d stale snapshots", removed)
	}

	return removed
}
