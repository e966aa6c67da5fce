package util

import "github.com/barsava/ethfetch/ui"

// TokenColumn is the human-readable view-model for one token column of a
// balance report. Symbol carries a Severity annotation, fetched symbols
// render green while unknown tokens fall back to a shortened address in
// yellow. JSON consumers receive clean plain strings.
type TokenColumn struct {
	Address  string        `json:"address"`
	Symbol   ui.StyledText `json:"symbol"` // serializes as string
	Name     string        `json:"name,omitempty"`
	Decimals string        `json:"decimals"`
}

// WalletRow is the view-model for one wallet line: the address, its
// reverse-resolved name when one exists, and one cell per token column.
// An unknown balance is a "?" cell with SeverityError.
type WalletRow struct {
	Address string          `json:"address"`
	Name    ui.StyledText   `json:"name,omitempty"` // serializes as string
	Cells   []ui.StyledText `json:"cells"`          // serializes as []string
}

// BalanceReport is the complete view-model of one fetch run, ready to be
// printed or serialized. Totals sums each column over the wallets that
// have a known balance; it is nil when no wallet row exists.
type BalanceReport struct {
	Network string          `json:"network"`
	Block   string          `json:"block,omitempty"`
	Spender string          `json:"spender,omitempty"`
	Tokens  []TokenColumn   `json:"tokens"`
	Wallets []WalletRow     `json:"wallets"`
	Totals  []ui.StyledText `json:"totals,omitempty"` // serializes as []string
}

// ResolveRow is the view-model for a single name resolution answer, in
// either direction. Result severity is Success when resolution succeeded
// and Error when the input stayed unresolved.
type ResolveRow struct {
	Input  string        `json:"input"`
	Result ui.StyledText `json:"result"` // serializes as string
}

// ResolveReport is the view-model of a resolve run.
type ResolveReport struct {
	Network string       `json:"network"`
	Forward []ResolveRow `json:"forward,omitempty"`
	Reverse []ResolveRow `json:"reverse,omitempty"`
}
