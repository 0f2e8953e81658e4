package dtweet

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const avatarBaseURL = "https://avatars.dicebear.com/api/human/"

// ShortAddress abbreviates an address to its first six and last four
// characters, e.g. 0x1234...5678.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// AvatarURL returns the generated avatar image for an author.
func AvatarURL(author common.Address) string {
	var b strings.Builder
	b.WriteString(avatarBaseURL)
	b.WriteString(author.Hex())
	b.WriteString(".svg")
	return b.String()
}
