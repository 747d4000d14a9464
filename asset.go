package capratio

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Kind is the closed set of asset classes the engine understands.
type Kind int

const (
	Equity Kind = iota // a publicly traded stock, identified by its ticker symbol
	Crypto             // a cryptocurrency, identified by its CoinGecko id
	Gold               // the gold commodity, a single well-known asset
)

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case Equity:
		return "equity"
	case Crypto:
		return "crypto"
	case Gold:
		return "gold"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// equitySymbolRegex checks the equity ticker syntax: uppercase letters and
// digits, at most 10 characters, no separators.
var equitySymbolRegex = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// cryptoIDRegex checks the CoinGecko id syntax: lowercase alphanumerics and
// hyphens (e.g. "bitcoin", "avalanche-2").
var cryptoIDRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// Asset is a classified, validated asset identifier. The zero value is not a
// valid asset; use ParseAsset to construct one.
type Asset struct {
	kind Kind
	id   string
}

// ParseAsset classifies a user-supplied token into an asset.
//
// The classification is purely syntactic, no network access is involved:
//   - the literal "gold" (any case) is the gold commodity,
//   - a token matching the equity ticker syntax is an equity,
//   - any other well-formed token is a CoinGecko id, lowercased.
//
// The equity syntax check is the more restrictive discriminator, so an
// all-caps CoinGecko id (rare, but they exist) classifies as an equity; users
// must pass the lowercase id to force the crypto interpretation.
//
// It returns ErrEmptyToken for blank input and ErrInvalidToken for tokens
// containing control characters, embedded whitespace, or separators.
func ParseAsset(token string) (Asset, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return Asset{}, fmt.Errorf("cannot resolve %q: %w", token, ErrEmptyToken)
	}
	for _, r := range t {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return Asset{}, fmt.Errorf("token %q contains whitespace or control characters: %w", token, ErrInvalidToken)
		}
	}

	if strings.EqualFold(t, "gold") {
		return Asset{kind: Gold, id: "gold"}, nil
	}
	if equitySymbolRegex.MatchString(t) {
		return Asset{kind: Equity, id: t}, nil
	}

	id := strings.ToLower(t)
	if !cryptoIDRegex.MatchString(id) {
		return Asset{}, fmt.Errorf("token %q is neither a ticker symbol nor a coingecko id: %w", token, ErrInvalidToken)
	}
	return Asset{kind: Crypto, id: id}, nil
}

// Kind returns the asset's classified kind.
func (a Asset) Kind() Kind { return a.kind }

// ID returns the case-normalized identifier: the ticker symbol for an
// equity, the CoinGecko id for a cryptocurrency, "gold" for gold.
func (a Asset) ID() string { return a.id }

// String implements the fmt.Stringer interface.
func (a Asset) String() string { return a.id }

// key is the unique cache key for this asset. Kinds never share a key even
// for identical identifiers.
func (a Asset) key() string { return a.kind.String() + "/" + a.id }
