package order

import (
	"fmt"
	"strings"

	"workshop/internal/pkg/errs"
)

// JewelleryType is the metal family an order is made in. New metals are added
// by extending getJewelleryTypes.
type JewelleryType string

const (
	Gold   JewelleryType = "gold"
	Silver JewelleryType = "silver"
)

func getJewelleryTypes() map[JewelleryType]struct{} {
	return map[JewelleryType]struct{}{
		Gold:   {},
		Silver: {},
	}
}

func ParseJewelleryType(s string) (JewelleryType, error) {
	t := JewelleryType(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t JewelleryType) Validate() error {
	if _, ok := getJewelleryTypes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("jewelleryType", fmt.Errorf("%q is not a supported metal", string(t)))
	}
	return nil
}

func (t JewelleryType) String() string {
	return string(t)
}
