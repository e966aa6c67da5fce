package util_test

import (
	"fmt"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/barsava/ethfetch/reader"
	"github.com/barsava/ethfetch/ui"
	"github.com/barsava/ethfetch/util"
)

var (
	walletA  = ethcommon.HexToAddress("0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97")
	walletB  = ethcommon.HexToAddress("0x9642b23Ed1E01Df1092B92641051881a322F5D4E")
	tokenUSD = ethcommon.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	tokenOdd = ethcommon.HexToAddress("0x559432E18b281731c054cD703D4B49872BE4ed53")

	// The shortened form an unlabelled token renders as, derived from Hex()
	// so checksum casing never drifts from the implementation.
	shortOdd = tokenOdd.Hex()[:6] + ".." + tokenOdd.Hex()[38:]
)

// gridFixture builds the result of a fetch where tokenUSD answered every
// lookup, tokenOdd answered nothing about itself, and walletB's tokenOdd
// balance lookup failed.
func gridFixture() *reader.FetchResult {
	res := reader.NewFetchResult()

	res.Symbols[tokenUSD] = "USDC"
	res.Names[tokenUSD] = "USD Coin"
	res.Decimals[tokenUSD] = 6
	res.Balances[reader.BalanceKey{Wallet: walletA, Token: tokenUSD}] = big.NewInt(1500000)
	res.Balances[reader.BalanceKey{Wallet: walletB, Token: tokenUSD}] = big.NewInt(2500000)

	three := new(big.Int).Mul(big.NewInt(3), big.NewInt(1000000000000000000))
	res.Balances[reader.BalanceKey{Wallet: walletA, Token: tokenOdd}] = three

	res.ENSReverse[walletA] = "alice.eth"
	res.ResolvedWallets = []ethcommon.Address{walletA, walletB}
	return res
}

// ---------------------------------------------------------------------------
// Test 1: build phase (view-model correctness)
// ---------------------------------------------------------------------------

func TestBuildBalanceReportValues(t *testing.T) {
	res := gridFixture()
	report := util.BuildBalanceReport(
		"mainnet", 19000000,
		[]ethcommon.Address{walletA, walletB},
		[]ethcommon.Address{tokenUSD, tokenOdd},
		res, 18,
	)

	if report.Network != "mainnet" {
		t.Errorf("Network: want %q, got %q", "mainnet", report.Network)
	}
	if report.Block != "19000000" {
		t.Errorf("Block: want %q, got %q", "19000000", report.Block)
	}
	if len(report.Tokens) != 2 {
		t.Fatalf("expected 2 token columns, got %d", len(report.Tokens))
	}

	usd := report.Tokens[0]
	assertStyled(t, "USDC symbol", usd.Symbol, "USDC", ui.SeveritySuccess)
	if usd.Name != "USD Coin" {
		t.Errorf("USDC name: want %q, got %q", "USD Coin", usd.Name)
	}
	if usd.Decimals != "6" {
		t.Errorf("USDC decimals: want %q, got %q", "6", usd.Decimals)
	}

	odd := report.Tokens[1]
	assertStyled(t, "odd symbol", odd.Symbol, shortOdd, ui.SeverityWarn)
	if odd.Decimals != "18 (default)" {
		t.Errorf("odd decimals: want %q, got %q", "18 (default)", odd.Decimals)
	}

	if len(report.Wallets) != 2 {
		t.Fatalf("expected 2 wallet rows, got %d", len(report.Wallets))
	}
	rowA := report.Wallets[0]
	if rowA.Address != walletA.Hex() {
		t.Errorf("row A address: want %q, got %q", walletA.Hex(), rowA.Address)
	}
	assertStyled(t, "row A name", rowA.Name, "alice.eth", ui.SeveritySuccess)
	assertStyled(t, "A/USDC", rowA.Cells[0], "1.5", ui.SeverityInfo)
	assertStyled(t, "A/odd", rowA.Cells[1], "3", ui.SeverityInfo)

	rowB := report.Wallets[1]
	if rowB.Name.Text != "" {
		t.Errorf("row B name: want empty, got %q", rowB.Name.Text)
	}
	assertStyled(t, "B/USDC", rowB.Cells[0], "2.5", ui.SeverityInfo)
	assertStyled(t, "B/odd", rowB.Cells[1], "?", ui.SeverityError)

	if len(report.Totals) != 2 {
		t.Fatalf("expected 2 total cells, got %d", len(report.Totals))
	}
	assertStyled(t, "USDC total", report.Totals[0], "4", ui.SeverityCritical)
	assertStyled(t, "odd total", report.Totals[1], "3", ui.SeverityCritical)
}

func TestBuildBalanceReportSingleWalletHasNoTotals(t *testing.T) {
	res := gridFixture()
	report := util.BuildBalanceReport(
		"mainnet", 0,
		[]ethcommon.Address{walletA},
		[]ethcommon.Address{tokenUSD},
		res, 18,
	)
	if report.Block != "" {
		t.Errorf("Block: want empty for unknown block, got %q", report.Block)
	}
	if report.Totals != nil {
		t.Errorf("expected no totals row for a single wallet, got %d cells", len(report.Totals))
	}
}

func TestBuildAllowanceReport(t *testing.T) {
	res := gridFixture()
	spender := walletB
	res.Allowance[reader.BalanceKey{Wallet: walletA, Token: tokenUSD}] = big.NewInt(7000000)

	report := util.BuildAllowanceReport(
		"mainnet", 0, spender,
		[]ethcommon.Address{walletA},
		[]ethcommon.Address{tokenUSD},
		res, 18,
	)
	if report.Spender != spender.Hex() {
		t.Errorf("Spender: want %q, got %q", spender.Hex(), report.Spender)
	}
	assertStyled(t, "A/USDC allowance", report.Wallets[0].Cells[0], "7", ui.SeverityInfo)
}

func TestBuildResolveReport(t *testing.T) {
	res := reader.NewFetchResult()
	res.ENSForward["alice.eth"] = walletA
	res.ENSReverse[walletA] = "alice.eth"

	report := util.BuildResolveReport(
		"mainnet",
		[]string{"Alice.ETH", "ghost.eth"},
		[]ethcommon.Address{walletA, walletB},
		res,
	)

	if len(report.Forward) != 2 {
		t.Fatalf("expected 2 forward rows, got %d", len(report.Forward))
	}
	// Lookup is keyed by the normalized name even when the input is not.
	assertStyled(t, "forward hit", report.Forward[0].Result, walletA.Hex(), ui.SeveritySuccess)
	assertStyled(t, "forward miss", report.Forward[1].Result, "?", ui.SeverityError)

	if len(report.Reverse) != 2 {
		t.Fatalf("expected 2 reverse rows, got %d", len(report.Reverse))
	}
	assertStyled(t, "reverse hit", report.Reverse[0].Result, "alice.eth", ui.SeveritySuccess)
	assertStyled(t, "reverse miss", report.Reverse[1].Result, "?", ui.SeverityError)
}

// ---------------------------------------------------------------------------
// Test 2: print phase (RecordingUI entries)
// ---------------------------------------------------------------------------

func TestPrintBalanceReportRendering(t *testing.T) {
	rec := ui.NewRecordingUI()
	res := gridFixture()
	report := util.BuildBalanceReport(
		"mainnet", 19000000,
		[]ethcommon.Address{walletA, walletB},
		[]ethcommon.Address{tokenUSD, tokenOdd},
		res, 18,
	)
	util.PrintBalanceReport(rec, report)

	entries := rec.Entries()
	if len(entries) == 0 {
		t.Fatal("expected recorded entries, got none")
	}
	if entries[0].Method != "Section" || entries[0].Value != "balances on mainnet" {
		t.Errorf("leading entry: want Section %q, got %s %q",
			"balances on mainnet", entries[0].Method, entries[0].Value)
	}

	wantKV := []string{
		"block: 19000000",
		fmt.Sprintf("USDC: USD Coin  %s  decimals 6", tokenUSD.Hex()),
		fmt.Sprintf("%s: %s  decimals 18 (default)", shortOdd, tokenOdd.Hex()),
	}
	gotKV := methodValues(entries, "KeyValue")
	assertStringSlice(t, "key/value block", gotKV, wantKV)

	wantHeader := "wallet | name | USDC | " + shortOdd
	gotHeaders := methodValues(entries, "TableHeader")
	if len(gotHeaders) != 1 || gotHeaders[0] != wantHeader {
		t.Errorf("table header: want [%q], got %q", wantHeader, gotHeaders)
	}

	wantRows := []string{
		fmt.Sprintf("%s | alice.eth | 1.5 | 3", walletA.Hex()),
		fmt.Sprintf("%s |  | 2.5 | ?", walletB.Hex()),
		"TOTAL |  | 4 | 3",
	}
	assertStringSlice(t, "table rows", rec.TableRows(), wantRows)

	if n := len(methodValues(entries, "TableDivider")); n != 1 {
		t.Errorf("expected exactly 1 divider before the totals row, got %d", n)
	}
}

func TestPrintResolveReportRendering(t *testing.T) {
	rec := ui.NewRecordingUI()
	res := reader.NewFetchResult()
	res.ENSForward["alice.eth"] = walletA

	report := util.BuildResolveReport("mainnet", []string{"alice.eth"}, nil, res)
	util.PrintResolveReport(rec, report)

	wantRows := []string{
		fmt.Sprintf("alice.eth | %s", walletA.Hex()),
	}
	assertStringSlice(t, "forward rows", rec.TableRows(), wantRows)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func methodValues(entries []ui.Entry, method string) []string {
	var out []string
	for _, e := range entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

func assertStyled(t *testing.T, what string, got ui.StyledText, wantText string, wantSeverity ui.Severity) {
	t.Helper()
	if got.Text != wantText {
		t.Errorf("%s: want text %q, got %q", what, wantText, got.Text)
	}
	if got.Severity != wantSeverity {
		t.Errorf("%s: want severity %d, got %d", what, wantSeverity, got.Severity)
	}
}

func assertStringSlice(t *testing.T, what string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: want %d entries, got %d", what, len(want), len(got))
		for i, g := range got {
			t.Logf("  [%d] %q", i, g)
		}
		t.FailNow()
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s row %d:\n  want: %q\n   got: %q", what, i, want[i], got[i])
		}
	}
}
