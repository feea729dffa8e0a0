// Package cache prunes stale application artifacts left on disk.
package cache

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/tevify/tevify/filesystem"
	"github.com/tevify/tevify/log"
	"github.com/tevify/tevify/where"
)

const (
	// LogsTTL bounds how long daily log files are kept.
	LogsTTL = 7 * 24 * time.Hour
	// SocketsTTL bounds how long an engine socket may outlive its process.
	SocketsTTL = 24 * time.Hour
)

// CollectGarbage removes expired log files and leftover engine sockets.
func CollectGarbage() {
	now := time.Now()
	removed := prune(where.Logs(), ".log", LogsTTL, now) + prune(where.Temp(), ".sock", SocketsTTL, now)
	if removed > 0 {
		log.Infof("removed %d stale files", removed)
	}
}

// prune deletes files under dir with the given suffix last modified more than ttl before now.
func prune(dir, suffix string, ttl time.Duration, now time.Time) (removed int) {
	fs := filesystem.API()
	_ = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(path, suffix) {
			return nil
		}
		if now.Sub(info.ModTime()) > ttl {
			if fs.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	return removed
}
