package util

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	ethfetchcommon "github.com/barsava/ethfetch/common"
)

var (
	tokenSplitRe = regexp.MustCompile(`[\s,;]+`)
	ensNameRe    = regexp.MustCompile(`(?i)^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)+$`)
)

// IsENSName reports whether s looks like a dotted ENS style name. Hex
// addresses are never names, everything else needs at least one dot and
// label-safe characters.
func IsENSName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0x") {
		return false
	}
	return ensNameRe.MatchString(s)
}

// ParseWalletsBlob splits free form text into addresses and ENS names.
// Entries may be separated by newlines, commas, semicolons or whitespace,
// anything after a '#' is a comment. Both result lists are de-duplicated
// with input order preserved, names are lowercased. Tokens that are
// neither a valid address nor a plausible name come back as junk so the
// caller can warn about them.
func ParseWalletsBlob(blob string) (addrs []common.Address, names []string, junk []string) {
	addrs = []common.Address{}
	names = []string{}
	junk = []string{}
	if blob == "" {
		return addrs, names, junk
	}

	seenAddr := map[common.Address]bool{}
	seenName := map[string]bool{}

	text := strings.ReplaceAll(blob, ",", "\n")
	for _, raw := range strings.Split(text, "\n") {
		line, _, _ := strings.Cut(raw, "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, tok := range tokenSplitRe.Split(line, -1) {
			if tok == "" {
				continue
			}
			if ethfetchcommon.IsAddress(tok) {
				addr := ethfetchcommon.HexToAddress(tok)
				if !seenAddr[addr] {
					seenAddr[addr] = true
					addrs = append(addrs, addr)
				}
				continue
			}
			if IsENSName(tok) {
				name := strings.ToLower(strings.TrimSpace(tok))
				if !seenName[name] {
					seenName[name] = true
					names = append(names, name)
				}
				continue
			}
			junk = append(junk, tok)
		}
	}
	return addrs, names, junk
}

// ParseAddressesBlob is ParseWalletsBlob for address-only input (token
// contract lists), names are not accepted.
func ParseAddressesBlob(blob string) (addrs []common.Address, junk []string) {
	addrs = []common.Address{}
	junk = []string{}
	if blob == "" {
		return addrs, junk
	}

	seen := map[common.Address]bool{}

	text := strings.ReplaceAll(blob, ",", "\n")
	for _, raw := range strings.Split(text, "\n") {
		line, _, _ := strings.Cut(raw, "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, tok := range tokenSplitRe.Split(line, -1) {
			if tok == "" {
				continue
			}
			if !ethfetchcommon.IsAddress(tok) {
				junk = append(junk, tok)
				continue
			}
			addr := ethfetchcommon.HexToAddress(tok)
			if !seen[addr] {
				seen[addr] = true
				addrs = append(addrs, addr)
			}
		}
	}
	return addrs, junk
}

// LoadWalletsFile reads a wallet list file and parses it like
// ParseWalletsBlob.
func LoadWalletsFile(path string) ([]common.Address, []string, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("couldn't read wallet file %s: %w", path, err)
	}
	addrs, names, junk := ParseWalletsBlob(string(content))
	return addrs, names, junk, nil
}

// LoadAddressesFile reads an address list file and parses it like
// ParseAddressesBlob.
func LoadAddressesFile(path string) ([]common.Address, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't read address file %s: %w", path, err)
	}
	addrs, junk := ParseAddressesBlob(string(content))
	return addrs, junk, nil
}
