package utils

import "github.com/microcosm-cc/bluemonday"

// Two policies: rich text keeps the usual user-generated markup, plain
// strips every tag. Descriptions, comments and bios go through the rich
// policy; single-line fields such as names go through the plain one.
var (
	richPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans rich text supplied by users.
func Sanitize(input string) string {
	return richPolicy.Sanitize(input)
}

// SanitizePlain strips all markup from a single-line field.
func SanitizePlain(input string) string {
	return plainPolicy.Sanitize(input)
}
