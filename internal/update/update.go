// Package update checks GitHub releases for newer ddltop builds and
// replaces the running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	selfupdate "github.com/creativeprojects/go-selfupdate"
)

// Repo is the GitHub slug releases are published under.
const Repo = "wcpan/ddltop"

const (
	checkTimeout = 10 * time.Second
	applyTimeout = 2 * time.Minute
)

var ErrDevBuild = errors.New("cannot update a development build, install from a release first")

type Release struct {
	Version      string
	URL          string
	ReleaseNotes string
}

// IsDevBuild reports whether version carries no release information.
func IsDevBuild(version string) bool {
	return version == "" || version == "dev"
}

// CheckForUpdate returns the latest release when it is newer than
// currentVersion, and nil otherwise. Development and unparseable builds
// are never reported as outdated.
func CheckForUpdate(ctx context.Context, currentVersion, repo string) (*Release, error) {
	if IsDevBuild(currentVersion) {
		return nil, nil
	}
	current, err := parseSemver(currentVersion)
	if err != nil {
		return nil, nil
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, fmt.Errorf("detect latest release: %w", err)
	}
	if !found || !isNewer(current, latest.Version()) {
		return nil, nil
	}
	return releaseFrom(latest), nil
}

// Apply downloads the latest release and swaps it in for the current
// executable.
func Apply(ctx context.Context, currentVersion, repo string) (*Release, error) {
	if IsDevBuild(currentVersion) {
		return nil, ErrDevBuild
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	rel, err := updater.UpdateSelf(ctx, strings.TrimPrefix(currentVersion, "v"), selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}
	return releaseFrom(rel), nil
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("create github source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}
	return updater, nil
}

func releaseFrom(rel *selfupdate.Release) *Release {
	return &Release{
		Version:      rel.Version(),
		URL:          rel.URL,
		ReleaseNotes: rel.ReleaseNotes,
	}
}

func isNewer(current *semver.Version, latest string) bool {
	lv, err := parseSemver(latest)
	if err != nil {
		return false
	}
	return lv.GreaterThan(current)
}

// CompareVersions returns -1, 0 or 1 like strings.Compare. Unparseable
// versions sort below any valid one.
func CompareVersions(current, latest string) int {
	cv, errC := parseSemver(current)
	lv, errL := parseSemver(latest)

	switch {
	case errC != nil && errL != nil:
		return 0
	case errC != nil:
		return -1
	case errL != nil:
		return 1
	}
	return cv.Compare(lv)
}

func parseSemver(s string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(s, "v"))
}
