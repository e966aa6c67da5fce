package reader_test

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	ethfetchcommon "github.com/barsava/ethfetch/common"
	"github.com/barsava/ethfetch/reader"
)

// ---------------------------------------------------------------------------
// Test 1: name hashing
// ---------------------------------------------------------------------------

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"alice.eth", "alice.eth"},
		{"  Alice.ETH ", "alice.eth"},
		{"VITALIK.eth", "vitalik.eth"},
		// NFC composes a letter followed by a combining accent.
		{"café.eth", "café.eth"},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := reader.NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestNamehashKnownNodes(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"", "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"eth", "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"},
		{"foo.eth", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
	}
	for _, c := range cases {
		if got := reader.Namehash(c.name); got != common.HexToHash(c.want) {
			t.Errorf("Namehash(%q): want %s, got %s", c.name, c.want, got.Hex())
		}
	}
}

func TestReverseNodeUsesLowercaseUnprefixedHex(t *testing.T) {
	addr := common.HexToAddress("0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97")
	want := reader.Namehash("4838b106fce9647bdf1e7877bf73ce8b0bad5f97.addr.reverse")
	if got := reader.ReverseNode(addr); got != want {
		t.Errorf("want %s, got %s", want.Hex(), got.Hex())
	}
}

// ---------------------------------------------------------------------------
// Test 2: forward resolution
// ---------------------------------------------------------------------------

func TestResolveNames(t *testing.T) {
	u := newENSUniverse()
	u.forward("alice.eth", publicResolver, aliceAddr)
	u.forward("bob.eth", publicResolver, bobAddr)
	u.forward("carol.eth", vanityResolver, carolAddr)
	u.forward("zero.eth", publicResolver, common.Address{})
	// nobody.eth stays unregistered

	got, err := u.ens.ResolveNames([]string{
		" Alice.ETH ", "bob.eth", "carol.eth", "nobody.eth", "zero.eth", "alice.eth",
	})
	if err != nil {
		t.Fatalf("ResolveNames failed: %v", err)
	}
	want := map[string]common.Address{
		"alice.eth": aliceAddr,
		"bob.eth":   bobAddr,
		"carol.eth": carolAddr,
	}
	if len(got) != len(want) {
		t.Fatalf("want %d resolved names, got %v", len(want), got)
	}
	for name, addr := range want {
		if got[name] != addr {
			t.Errorf("%s: want %s, got %s", name, addr.Hex(), got[name].Hex())
		}
	}

	batches := u.node.servedBatches()
	sort.Ints(batches)
	if !equalInts(batches, []int{1, 3, 5}) {
		t.Errorf("want a 5 node registry round plus resolver rounds of 3 and 1, got %v", batches)
	}
}

func TestResolveNamesWithNothingToAsk(t *testing.T) {
	u := newENSUniverse()
	got, err := u.ens.ResolveNames([]string{"", "   "})
	if err != nil {
		t.Fatalf("ResolveNames failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("want an empty map, got %v", got)
	}
	if len(u.node.servedBatches()) != 0 || u.node.directCalls() != 0 {
		t.Error("blank names must not touch the node")
	}
}

// ---------------------------------------------------------------------------
// Test 3: reverse resolution
// ---------------------------------------------------------------------------

func TestLookupNames(t *testing.T) {
	u := newENSUniverse()
	u.reverse(aliceAddr, publicResolver, "alice.eth")
	u.reverse(bobAddr, vanityResolver, "bob.eth")
	u.reverse(carolAddr, publicResolver, "")
	// ghostAddr has no reverse record

	got, err := u.ens.LookupNames([]common.Address{
		aliceAddr, bobAddr, carolAddr, ghostAddr, aliceAddr,
	})
	if err != nil {
		t.Fatalf("LookupNames failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 names, got %v", got)
	}
	if got[aliceAddr] != "alice.eth" {
		t.Errorf("%s: want alice.eth, got %q", aliceAddr.Hex(), got[aliceAddr])
	}
	if got[bobAddr] != "bob.eth" {
		t.Errorf("%s: want bob.eth, got %q", bobAddr.Hex(), got[bobAddr])
	}
	if _, ok := got[carolAddr]; ok {
		t.Error("an empty reverse record must stay absent")
	}

	batches := u.node.servedBatches()
	sort.Ints(batches)
	if !equalInts(batches, []int{1, 2, 4}) {
		t.Errorf("want a 4 node registry round plus resolver rounds of 2 and 1, got %v", batches)
	}
}

func TestLookupNamesWithoutReverseRecords(t *testing.T) {
	u := newENSUniverse()
	got, err := u.ens.LookupNames([]common.Address{ghostAddr})
	if err != nil {
		t.Fatalf("LookupNames failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("want an empty map, got %v", got)
	}
	if batches := u.node.servedBatches(); !equalInts(batches, []int{1}) {
		t.Errorf("want only the registry round, got %v", batches)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	ensRegistry    = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")
	publicResolver = common.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41")
	vanityResolver = common.HexToAddress("0xA2C122BE93b0074270ebeE7f6b7292C7deB45047")

	aliceAddr = common.HexToAddress("0x0011223344556677889900112233445566778899")
	bobAddr   = common.HexToAddress("0x1122334455667788990011223344556677889900")
	carolAddr = common.HexToAddress("0x2233445566778899001122334455667788990011")
	ghostAddr = common.HexToAddress("0x3344556677889900112233445566778899001122")
)

// ensUniverse scripts a registry and its resolvers on top of a fakeNode.
// Records registered through forward and reverse drive the answers.
type ensUniverse struct {
	node      *fakeNode
	ens       *reader.ENSReader
	resolvers map[common.Hash]common.Address
	addrs     map[common.Hash]common.Address
	names     map[common.Hash]string
}

func newENSUniverse() *ensUniverse {
	u := &ensUniverse{
		node:      newFakeNode(multicallAddr),
		resolvers: map[common.Hash]common.Address{},
		addrs:     map[common.Hash]common.Address{},
		names:     map[common.Hash]string{},
	}
	u.node.handle = u.answer
	mc := reader.NewMultiCallReader(reader.NewEthReader(u.node), multicallAddr)
	u.ens = reader.NewENSReader(mc, ensRegistry)
	return u
}

func (u *ensUniverse) forward(name string, resolver, target common.Address) {
	node := reader.Namehash(name)
	u.resolvers[node] = resolver
	u.addrs[node] = target
}

func (u *ensUniverse) reverse(addr, resolver common.Address, name string) {
	node := reader.ReverseNode(addr)
	u.resolvers[node] = resolver
	u.names[node] = name
}

func (u *ensUniverse) answer(target common.Address, data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("calldata too short: %x", data)
	}
	registryABI := ethfetchcommon.GetENSRegistryABI()
	resolverABI := ethfetchcommon.GetENSResolverABI()
	switch {
	case target == ensRegistry && bytes.Equal(data[:4], registryABI.Methods["resolver"].ID):
		node, err := unpackNodeArg(registryABI.Methods["resolver"], data)
		if err != nil {
			return nil, err
		}
		return addressWord(u.resolvers[node]), nil
	case bytes.Equal(data[:4], resolverABI.Methods["addr"].ID):
		node, err := unpackNodeArg(resolverABI.Methods["addr"], data)
		if err != nil {
			return nil, err
		}
		if u.resolvers[node] != target {
			return addressWord(common.Address{}), nil
		}
		return addressWord(u.addrs[node]), nil
	case bytes.Equal(data[:4], resolverABI.Methods["name"].ID):
		node, err := unpackNodeArg(resolverABI.Methods["name"], data)
		if err != nil {
			return nil, err
		}
		if u.resolvers[node] != target {
			return dynString("")
		}
		return dynString(u.names[node])
	}
	return nil, fmt.Errorf("unexpected call to %s with selector %x", target.Hex(), data[:4])
}

func unpackNodeArg(method abi.Method, data []byte) (common.Hash, error) {
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(values[0].([32]byte)), nil
}

func dynString(s string) ([]byte, error) {
	typ, _ := abi.NewType("string", "", nil)
	return abi.Arguments{{Type: typ}}.Pack(s)
}
