package domain

import (
	"regexp"
	"time"
)

// PrefixLayout is the time layout of a timestamp prefix, without the
// trailing separator.
const PrefixLayout = "2006-01-02_150405"

// PrefixSeparator joins the formatted timestamp and the original name.
const PrefixSeparator = "_"

var prefixPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}_[0-9]{6}_`)

// HasTimestampPrefix reports whether name already starts with a
// YYYY-MM-DD_HHMMSS_ prefix.
func HasTimestampPrefix(name string) bool {
	return prefixPattern.MatchString(name)
}

func FormatTimestamp(t time.Time) string {
	return t.Local().Format(PrefixLayout)
}

// PrefixedName returns name with the creation timestamp prepended.
func PrefixedName(createdAt time.Time, name string) string {
	return FormatTimestamp(createdAt) + PrefixSeparator + name
}
