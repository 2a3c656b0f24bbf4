package repo

import (
	"regexp"
	"strings"
)

var (
	branchPattern = regexp.MustCompile(`On branch (.*)`)
	cleanPattern  = regexp.MustCompile(`nothing to commit, working tree clean`)
)

// ParseStatus extracts the branch and clean-tree flag from `git status` output.
func ParseStatus(out string) (Status, error) {
	m := branchPattern.FindStringSubmatch(out)
	if m == nil {
		return Status{}, &BranchNotFoundError{Output: out}
	}
	return Status{
		Branch: strings.TrimSpace(m[1]),
		Clean:  cleanPattern.MatchString(out),
		Raw:    out,
	}, nil
}

// TagOnHead reports whether decoration shows HEAD attached to a branch
// with tag among its decorations.
func TagOnHead(decoration, tag string) bool {
	re := regexp.MustCompile(`\(HEAD -> [^,]+, .*?tag: ` + regexp.QuoteMeta(tag) + `(?:[,)]|$)`)
	return re.MatchString(decoration)
}

// SplitLines returns the non-empty, trimmed lines of out.
func SplitLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
