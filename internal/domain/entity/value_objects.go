package entity

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address represents a 0x-prefixed, 40 hex character Ethereum address.
type Address string

// NewAddress creates a new Address instance. Only the lowercase "0x" prefix is
// accepted; letter case of the hex digits is not checked.
func NewAddress(raw string) (Address, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("address cannot be empty")
	}
	if !strings.HasPrefix(raw, "0x") {
		return "", fmt.Errorf("address '%s' must start with 0x", raw)
	}
	if !common.IsHexAddress(raw) {
		return "", fmt.Errorf("address '%s' is not 40 hex characters", raw)
	}
	return Address(raw), nil
}

// Checksum returns the EIP-55 mixed-case form of the address.
func (a Address) Checksum() string {
	return common.HexToAddress(string(a)).Hex()
}

// String returns the address as written in the descriptor.
func (a Address) String() string {
	return string(a)
}

// IconName represents a descriptor icon file name.
type IconName string

// NewIconName creates a new IconName. The name must end in .png and have a
// non-empty stem.
func NewIconName(raw string) (IconName, error) {
	if !strings.HasSuffix(raw, ".png") || len(raw) <= len(".png") {
		return "", fmt.Errorf("icon '%s' is not a png file name", raw)
	}
	return IconName(raw), nil
}

// String returns the icon file name.
func (i IconName) String() string {
	return string(i)
}

// LinkURL represents an absolute http(s) integration URL.
type LinkURL string

// NewLinkURL creates a new LinkURL instance.
func NewLinkURL(rawURL string) (LinkURL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", fmt.Errorf("link url cannot be empty")
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid link url format '%s': %w", rawURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "http", "https":
	default:
		return "", fmt.Errorf("link url '%s' has unsupported scheme: '%s'", rawURL, scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("link url '%s' has no host", rawURL)
	}

	return LinkURL(rawURL), nil
}

// String returns the string representation of the LinkURL.
func (l LinkURL) String() string {
	return string(l)
}
