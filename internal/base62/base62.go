package base62

import (
	"errors"
	"slices"
	"strings"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var ErrInvalidCharacter = errors.New("invalid character")

// Encode converts a non-negative id to its base62 form, most significant
// digit first, no padding. Injective: distinct ids never share a code.
func Encode(id int64) string {
	if id == 0 {
		return string(alphabet[0])
	}

	res := make([]byte, 0, 12)

	for id > 0 {
		res = append(res, alphabet[id%62])
		id /= 62
	}
	slices.Reverse(res)
	return string(res)
}

func Decode(code string) (int64, error) {
	var res int64

	for _, char := range code {
		index := strings.IndexRune(alphabet, char)

		if index == -1 {
			return 0, ErrInvalidCharacter
		}

		res = res*62 + int64(index)
	}

	return res, nil
}
