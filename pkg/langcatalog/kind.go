package langcatalog

import (
	"fmt"
	"strings"
)

// Kind classifies a language as source code or one of the non-code formats.
type Kind int

// Language kinds. KindUnknown is never produced by a loaded catalog.
const (
	KindUnknown Kind = iota
	KindProgramming
	KindData
	KindProse
	KindMarkup
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindProgramming: "programming",
	KindData:        "data",
	KindProse:       "prose",
	KindMarkup:      "markup",
}

// String returns the dataset spelling of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a dataset "type" value into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "programming":
		return KindProgramming, nil
	case "data":
		return KindData, nil
	case "prose":
		return KindProse, nil
	case "markup":
		return KindMarkup, nil
	default:
		return KindUnknown, fmt.Errorf("%w: unknown language type %q", ErrInvalidDataset, s)
	}
}
