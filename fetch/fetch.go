// seehuhn.de/go/fontmerge - composite fonts from per-script subsets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fetch downloads font files into a local cache directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("fontmerge.fetch")
}

// maxAttempts is the number of download attempts before giving up.
const maxAttempts = 3

// retryDelay is the base delay between download attempts.  The n-th
// retry waits n times this long.
var retryDelay = time.Second

// Fetch downloads url into dir/filename, unless the file is already
// present in the cache.  It returns the path of the cached file.
//
// Downloads go through a temporary file which is renamed into place
// only after the transfer has completed, so a partial download never
// becomes visible under the final name.
func Fetch(ctx context.Context, dir, filename, url string) (string, error) {
	fname := filepath.Join(dir, filename)
	if _, err := os.Stat(fname); err == nil {
		tracer().Debugf("cache hit for %s", filename)
		return fname, nil
	}

	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}

	tracer().Infof("downloading %s", url)
	for attempt := 1; ; attempt++ {
		err = download(ctx, fname, url)
		if err == nil {
			return fname, nil
		}
		if attempt >= maxAttempts || ctx.Err() != nil {
			break
		}
		tracer().Errorf("attempt %d failed: %v", attempt, err)
		select {
		case <-time.After(time.Duration(attempt) * retryDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("fetching %s: %w", url, err)
}

func download(ctx context.Context, fname, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %q", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fname), filepath.Base(fname)+".*")
	if err != nil {
		return err
	}
	_, err = io.Copy(tmp, resp.Body)
	if err2 := tmp.Close(); err == nil {
		err = err2
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), fname)
}

// Stat reports whether filename is already present in the cache
// directory dir.
func Stat(dir, filename string) bool {
	info, err := os.Stat(filepath.Join(dir, filename))
	return err == nil && info.Mode().IsRegular()
}
