package util_test

import (
	"os"
	"path/filepath"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/barsava/ethfetch/util"
)

func TestIsENSName(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"alice.eth", true},
		{"sub.alice.eth", true},
		{"ALICE.ETH", true},
		{"  alice.eth  ", true},
		{"a-b.eth", true},
		{"alice", false},
		{"", false},
		{"0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97", false},
		{"0xalice.eth", false},
		{"-alice.eth", false},
		{"alice-.eth", false},
		{"alice..eth", false},
	}
	for _, c := range cases {
		if got := util.IsENSName(c.in); got != c.want {
			t.Errorf("IsENSName(%q): want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestParseWalletsBlob(t *testing.T) {
	blob := `
0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97, alice.eth; ALICE.eth
0x4838b106fce9647bdf1e7877bf73ce8b0bad5f97  # same wallet, different case
bob.eth not-a-thing
# full line comment
0x9642b23Ed1E01Df1092B92641051881a322F5D4E
`
	addrs, names, junk := util.ParseWalletsBlob(blob)

	wantAddrs := []ethcommon.Address{
		ethcommon.HexToAddress("0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97"),
		ethcommon.HexToAddress("0x9642b23Ed1E01Df1092B92641051881a322F5D4E"),
	}
	if len(addrs) != len(wantAddrs) {
		t.Fatalf("addrs: want %d, got %d (%v)", len(wantAddrs), len(addrs), addrs)
	}
	for i := range wantAddrs {
		if addrs[i] != wantAddrs[i] {
			t.Errorf("addrs[%d]: want %s, got %s", i, wantAddrs[i].Hex(), addrs[i].Hex())
		}
	}

	wantNames := []string{"alice.eth", "bob.eth"}
	if len(names) != len(wantNames) {
		t.Fatalf("names: want %v, got %v", wantNames, names)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("names[%d]: want %q, got %q", i, wantNames[i], names[i])
		}
	}

	if len(junk) != 1 || junk[0] != "not-a-thing" {
		t.Errorf("junk: want [not-a-thing], got %v", junk)
	}
}

func TestParseWalletsBlobEmpty(t *testing.T) {
	addrs, names, junk := util.ParseWalletsBlob("")
	if len(addrs)+len(names)+len(junk) != 0 {
		t.Errorf("empty blob: want all empty, got %v %v %v", addrs, names, junk)
	}
}

func TestParseAddressesBlobRejectsNames(t *testing.T) {
	addrs, junk := util.ParseAddressesBlob("alice.eth 0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97")
	if len(addrs) != 1 {
		t.Fatalf("addrs: want 1, got %d", len(addrs))
	}
	if len(junk) != 1 || junk[0] != "alice.eth" {
		t.Errorf("junk: want [alice.eth], got %v", junk)
	}
}

func TestLoadWalletsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	content := "0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97\nalice.eth # ops wallet\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %s", err)
	}

	addrs, names, junk, err := util.LoadWalletsFile(path)
	if err != nil {
		t.Fatalf("LoadWalletsFile: %s", err)
	}
	if len(addrs) != 1 || len(names) != 1 || len(junk) != 0 {
		t.Errorf("want 1 addr, 1 name, 0 junk; got %d, %d, %d", len(addrs), len(names), len(junk))
	}

	if _, _, _, err := util.LoadWalletsFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
