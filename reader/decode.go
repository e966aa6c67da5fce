package reader

import (
	"bytes"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ReturnKind tells the decoder how to interpret the raw return bytes of a
// call. It is fixed when the call is constructed so decoding never has to
// guess from the bytes themselves.
type ReturnKind int

const (
	ReturnUint ReturnKind = iota
	ReturnAddress
	ReturnString
	ReturnBytes
)

// abi.NewType on a literal type string never fails, hence the ignored error.
var stringReturnArgs = func() abi.Arguments {
	t, _ := abi.NewType("string", "", nil)
	return abi.Arguments{{Type: t}}
}()

// DecodeUint reads a single uint256 return word. Anything shorter than a
// word is malformed and reported as a failed decode.
func DecodeUint(data []byte) (*big.Int, bool) {
	if len(data) < 32 {
		return nil, false
	}
	return big.NewInt(0).SetBytes(data[:32]), true
}

// DecodeAddress reads an address return word, the address lives in the low
// 20 bytes of the 32 byte word.
func DecodeAddress(data []byte) (common.Address, bool) {
	if len(data) < 32 {
		return common.Address{}, false
	}
	return common.BytesToAddress(data[12:32]), true
}

// DecodeString reads a string return. Standard tokens return a dynamic
// string but some old contracts (MKR among them) declare name and symbol
// as bytes32, so when dynamic decoding fails the first word is taken as a
// right-padded fixed string and trailing zero bytes are trimmed. Empty
// results count as failed decodes, so a successful decode is never "".
func DecodeString(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	if unpacked, err := stringReturnArgs.Unpack(data); err == nil {
		s := strings.TrimRight(unpacked[0].(string), "\x00")
		if s == "" || !utf8.ValidString(s) {
			return "", false
		}
		return s, true
	}
	word := data
	if len(word) > 32 {
		word = word[:32]
	}
	trimmed := bytes.TrimRight(word, "\x00")
	if len(trimmed) == 0 {
		return "", false
	}
	if !utf8.Valid(trimmed) {
		return "", false
	}
	return string(trimmed), true
}

// DecodeBytes passes the raw return through untouched.
func DecodeBytes(data []byte) ([]byte, bool) {
	return data, true
}
