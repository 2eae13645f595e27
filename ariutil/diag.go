// Package ariutil collects small helpers shared across the ARI codecs and
// tooling: CBOR diagnostic notation, hex-string framing, and identifier
// normalization rules common to the text codec and the constraint checker.
package ariutil

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

var diagMode, _ = cbor.DiagOptions{}.DiagMode()

// Diag renders value in CBOR extended diagnostic notation, the same
// human-readable form the ari CLI prints for --outform diag. value is
// first CBOR-encoded, then diagnosed, so it must be a type [cbor.Marshal]
// accepts.
func Diag(value any) (string, error) {
	data, err := cbor.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("ariutil: encode for diagnosis: %w", err)
	}

	text, err := diagMode.Diagnose(data)
	if err != nil {
		return "", fmt.Errorf("ariutil: diagnose: %w", err)
	}

	return text, nil
}

// DiagBytes renders already-CBOR-encoded data in extended diagnostic
// notation directly, without re-encoding it.
func DiagBytes(data []byte) (string, error) {
	text, err := diagMode.Diagnose(data)
	if err != nil {
		return "", fmt.Errorf("ariutil: diagnose: %w", err)
	}

	return text, nil
}

// ToHexString renders data as a lower-case "0x"-prefixed hex string, the
// framing used for CBOR blobs embedded in ARI text and in ADM JSON fixed
// test vectors.
func ToHexString(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

// FromHexString parses the "0x"-prefixed (or bare) hex form produced by
// [ToHexString].
func FromHexString(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("ariutil: decode hex string: %w", err)
	}

	return data, nil
}
