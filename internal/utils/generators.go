package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]+`)

// suffixSpace is 36^4, the number of 4-character base-36 suffixes.
var suffixSpace = big.NewInt(1679616)

// MakeEventCode derives a readable join code from the event name plus a
// random 4-character suffix. Collisions are possible; the suffix only
// makes them unlikely.
func MakeEventCode(name string) string {
	base := nonAlphanumeric.ReplaceAllString(strings.ToUpper(strings.TrimSpace(name)), "")
	if len(base) > 12 {
		base = base[:12]
	}
	if base == "" {
		base = "EVENT"
	}
	return base + randomSuffix()
}

func randomSuffix() string {
	n, err := rand.Int(rand.Reader, suffixSpace)
	if err != nil {
		// crypto/rand should never fail; degrade to a fixed suffix rather than panic
		return "0000"
	}
	s := strings.ToUpper(strconv.FormatInt(n.Int64(), 36))
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// MakeJoinURL builds the externally reachable join link for a code.
func MakeJoinURL(baseURL, code string) string {
	return fmt.Sprintf("%s/events/%s/join", strings.TrimSuffix(baseURL, "/"), code)
}
