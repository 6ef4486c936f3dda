package tonpay

import "regexp"

// TON addresses start with "0:" or "U" followed by 46 base64url characters.
var tonAddressRegex = regexp.MustCompile(`^(0:|U)[A-Za-z0-9_-]{46}$`)

// IsValidTonAddress reports whether the string is a syntactically valid TON
// wallet address. This is a format check only, no on-chain lookup happens.
func IsValidTonAddress(address string) bool {
	return tonAddressRegex.MatchString(address)
}
