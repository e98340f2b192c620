package model

import (
	"fmt"
	"strings"
	"unicode"

	"aula/shared/constant"
)

const (
	descSemesterKey = "Semester:"
	descBranchKey   = "Branch:"
	descSeparator   = " | "
)

// EncodeDescription renders the audience metadata line stored in an event
// description. The branch part is omitted when unknown.
func EncodeDescription(tag, branch string) string {
	if tag == constant.Empty {
		tag = constant.AudienceAll
	}

	if branch == constant.Empty {
		return fmt.Sprintf("%s %s", descSemesterKey, tag)
	}

	return fmt.Sprintf("%s %s%s%s %s", descSemesterKey, tag, descSeparator, descBranchKey, branch)
}

// DecodeDescription extracts the audience tag and branch from a description.
// Decoding is total: legacy events created before tagging, free-form
// descriptions and empty strings all decode to the sentinel All so they block
// every audience rather than none.
func DecodeDescription(description string) (tag, branch string) {
	tag = constant.AudienceAll

	if idx := strings.Index(description, descSemesterKey); idx != -1 {
		rest := description[idx+len(descSemesterKey):]
		if cut := strings.Index(rest, "|"); cut != -1 {
			rest = rest[:cut]
		}

		if value := strings.TrimSpace(rest); value != constant.Empty {
			tag = value
		}
	}

	if idx := strings.Index(description, descBranchKey); idx != -1 {
		rest := description[idx+len(descBranchKey):]
		if cut := strings.Index(rest, "|"); cut != -1 {
			rest = rest[:cut]
		}

		branch = strings.TrimSpace(rest)
	}

	return tag, branch
}

// NormalizeSemester maps free-form semester labels from extracted documents
// onto the canonical "Sem <n>" tag. Labels with no digit fall back to All.
func NormalizeSemester(raw string) string {
	digits := strings.Builder{}

	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		} else if digits.Len() > 0 {
			break
		}
	}

	if digits.Len() == 0 {
		return constant.AudienceAll
	}

	return "Sem " + digits.String()
}
