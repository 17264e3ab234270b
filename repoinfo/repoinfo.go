package repoinfo

import (
	"fmt"
	"strings"

	git "gopkg.in/src-d/go-git.v4"
)

// Resolve derives owner/name coordinates from the origin remote of the git
// repository at path. Used when neither flags nor config name the repo.
func Resolve(path string) (string, string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", "", fmt.Errorf("can't open repo with: %v", err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("can't find origin with: %v", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin has no url")
	}
	return ParseRemote(urls[0])
}

// ParseRemote handles both ssh (git@host:owner/repo.git) and https remotes.
func ParseRemote(url string) (string, string, error) {
	path := url
	if i := strings.Index(path, "://"); i >= 0 {
		path = path[i+3:]
		if j := strings.Index(path, "/"); j >= 0 {
			path = path[j+1:]
		} else {
			path = ""
		}
	} else if i := strings.Index(path, ":"); i >= 0 {
		path = path[i+1:]
	}
	path = strings.TrimSuffix(path, ".git")
	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("can't parse remote '%s'", url)
	}
	return parts[0], parts[1], nil
}
