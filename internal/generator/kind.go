package generator

import (
	"strconv"
	"strings"
)

// Kind selects the generation rule of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
	Datetime
	Text
)

var kindNames = [...]string{
	Numeric:     "Numeric",
	Categorical: "Categorical",
	Datetime:    "Datetime",
	Text:        "Text",
}

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	return []Kind{Numeric, Categorical, Datetime, Text}
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) Valid() bool {
	return k >= Numeric && k <= Text
}

// ParseKind resolves a kind tag such as "Numeric" or "text".
func ParseKind(s string) (Kind, error) {
	tag := strings.TrimSpace(s)
	for i, name := range kindNames {
		if strings.EqualFold(tag, name) {
			return Kind(i), nil
		}
	}
	return 0, &UnsupportedTypeError{Kind: s}
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &UnsupportedTypeError{Kind: k.String()}
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
