package aritext

import (
	"encoding/base32"
	"encoding/base64"
	"fmt"
)

func decodeBase64(body string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		if data, err = base64.StdEncoding.DecodeString(body); err != nil {
			return nil, fmt.Errorf("%w: invalid base64 byte string: %w", ErrSyntax, err)
		}
	}

	return data, nil
}

func decodeBase32(body string) ([]byte, error) {
	data, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base32 byte string: %w", ErrSyntax, err)
	}

	return data, nil
}
