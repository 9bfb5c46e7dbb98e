package directory

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxNameLength = 255
)

var errControlCharacter = errors.New("must not contain control characters")

// normalizeName trims a name and validates it
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required.Error("must not be empty"),
		validation.RuneLength(1, MaxNameLength),
		validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if strings.IndexFunc(s, unicode.IsControl) >= 0 {
				return errControlCharacter
			}
			return nil
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: name %w", ErrValidationFailed, err)
	}
	return name, nil
}

func validateKind(kind Kind) error {
	err := validation.Validate(kind,
		validation.Required,
		validation.In(KindFile, KindFolder),
	)
	if err != nil {
		return fmt.Errorf("%w: kind %q %w", ErrValidationFailed, kind, err)
	}
	return nil
}
