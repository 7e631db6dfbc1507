package users

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// AvatarURL derives the gravatar identicon URL for an email address. The hash
// input is trimmed and lowercased per the gravatar contract; the stored email
// itself keeps its original case.
func AvatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x", md5.Sum([]byte(normalized)))
}
