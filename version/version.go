// Package version provides release lookup, comparison and update notices.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/network"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/anitrack-cli/anitrack/where"
	"github.com/metafates/gache"
)

// ReleasesAPI is the endpoint that reports the latest release.
var ReleasesAPI = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

var (
	versionCacher *gache.Cache[string]
	cacherOnce    sync.Once
)

func cache() *gache.Cache[string] {
	cacherOnce.Do(func() {
		versionCacher = gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return versionCacher
}

// Latest returns the latest released version without the "v" prefix.
// The answer is cached for two days.
func Latest(ctx context.Context) (string, error) {
	ver, expired, err := cache().Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesAPI, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	_ = cache().Set(ver)
	return ver, nil
}
