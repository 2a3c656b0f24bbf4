// Package preflight implements the deployment gatekeeper: confirm the target,
// require a clean tree, tag HEAD, verify the tag and review notice folders.
package preflight

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/andyballingall/deploy-preflight/internal/repo"
)

// Request describes one deployment to be checked. It is not modified once built.
type Request struct {
	Region        string
	TargetName    string
	Production    bool
	Environment   string
	TagPrefix     string
	NoticeFolders []string
}

// EnvironmentLabel is the explicit environment, else "PROD" or "dev".
func (r Request) EnvironmentLabel() string {
	switch {
	case r.Environment != "":
		return r.Environment
	case r.Production:
		return "PROD"
	default:
		return "dev"
	}
}

// TagNamePrefix is the part of the tag name shared by every deployment
// of this label, e.g. "rel-PROD".
func (r Request) TagNamePrefix() string {
	if r.TagPrefix == "" {
		return r.EnvironmentLabel()
	}
	return r.TagPrefix + "-" + r.EnvironmentLabel()
}

// TagName returns the release tag for a deployment started at now:
// {prefix}-{DD}-{MM}-{YYYY}-{H}-{M}. Hour and minute are not zero-padded.
func (r Request) TagName(now time.Time) string {
	return fmt.Sprintf("%s-%02d-%02d-%d-%d-%d",
		r.TagNamePrefix(), now.Day(), int(now.Month()), now.Year(), now.Hour(), now.Minute())
}

// IsLabel reports whether s can be used as one component of a tag name,
// i.e. it holds no whitespace of any kind.
func IsLabel(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

// Validate rejects labels that cannot form a single git tag name.
func (r Request) Validate() error {
	if !IsLabel(r.Environment) {
		return &InvalidRequestError{Field: "environment", Value: r.Environment}
	}
	if !IsLabel(r.TagPrefix) {
		return &InvalidRequestError{Field: "tagPrefix", Value: r.TagPrefix}
	}
	return nil
}

// MatchingTags keeps the tags containing prefix and returns them newest first.
// tags must be ordered oldest first.
func MatchingTags(tags []repo.Revision, prefix string) []repo.Revision {
	var matched []repo.Revision
	for i := len(tags) - 1; i >= 0; i-- {
		if strings.Contains(tags[i].String(), prefix) {
			matched = append(matched, tags[i])
		}
	}
	return matched
}
