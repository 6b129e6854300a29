// Package identity derives display data from an email address.
package identity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tasku/internal/errors"
)

// Identity is the display data derived from an email address.
type Identity struct {
	Name     string
	Initials string
}

var separators = strings.NewReplacer(".", " ", "_", " ", "-", " ")

// localPart returns the cleaned local part: the text before the first "@"
// with separators turned into spaces and surrounding whitespace removed.
func localPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.TrimSpace(separators.Replace(local))
}

// NameFromEmail derives a display name. Only the first character is
// upper-cased: "juan.perez@inacap.cl" becomes "Juan perez".
func NameFromEmail(email string) string {
	local := localPart(email)
	if local == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(r)) + local[size:]
}

// InitialsFromEmail derives up to two upper-case initials. With two or more
// words it takes the first letter of the first two; otherwise the first two
// letters of the single word.
func InitialsFromEmail(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", errors.NewInvalidInputError("email", email, "email is empty")
	}
	local := localPart(email)
	if local == "" {
		return "", errors.NewInvalidInputError("email", email, "email has no local part")
	}

	words := strings.Fields(local)
	if len(words) >= 2 {
		first, _ := utf8.DecodeRuneInString(words[0])
		second, _ := utf8.DecodeRuneInString(words[1])
		return strings.ToUpper(string([]rune{first, second})), nil
	}

	runes := []rune(words[0])
	if len(runes) >= 2 {
		return strings.ToUpper(string(runes[:2])), nil
	}
	return strings.ToUpper(string(runes)), nil
}

// Derive returns both the name and the initials for email.
func Derive(email string) (Identity, error) {
	initials, err := InitialsFromEmail(email)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		Name:     NameFromEmail(email),
		Initials: initials,
	}, nil
}
