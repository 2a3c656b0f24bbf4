package app

import (
	"errors"
	"strings"

	"github.com/andyballingall/deploy-preflight/internal/preflight"
)

// labelValue implements pflag.Value for a single tag-name component such as
// an environment or tag prefix.
type labelValue string

func (l *labelValue) String() string {
	return string(*l)
}

func (l *labelValue) Set(v string) error {
	if !preflight.IsLabel(v) {
		return errors.New("must not contain whitespace")
	}
	*l = labelValue(v)
	return nil
}

func (l *labelValue) Type() string {
	return "<label>"
}

// pathValue implements pflag.Value to provide a custom type name in help text.
type pathValue string

func (p *pathValue) String() string {
	return string(*p)
}

func (p *pathValue) Set(v string) error {
	*p = pathValue(v)
	return nil
}

func (p *pathValue) Type() string {
	return "<path>"
}

// folderListValue collects --noticeFolderChanges. The flag may be repeated
// and each value may hold a comma-separated list.
type folderListValue []string

func (f *folderListValue) String() string {
	return strings.Join(*f, ",")
}

func (f *folderListValue) Set(v string) error {
	for _, folder := range strings.Split(v, ",") {
		folder = strings.TrimSpace(folder)
		if folder == "" {
			return errors.New("folder must not be empty")
		}
		*f = append(*f, folder)
	}
	return nil
}

func (f *folderListValue) Type() string {
	return "<folder>"
}
