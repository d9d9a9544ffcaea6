package checkout

import (
	"encoding/json"
	"strconv"
	"strings"
)

type Address struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	FullAddress string `json:"fullAddress"`
}

// NormalizeAddress maps whatever shape the address book returns onto Address. Keys are
// matched case-insensitively and missing fields become empty strings. FullAddress is
// composed as "Address, City, State - PinCode" when the source has none.
func NormalizeAddress(raw map[string]any) Address {
	full := field(raw, "FullAddress", "fullAddress")
	if full == "" {
		full = field(raw, "Address", "address") + ", " +
			field(raw, "City", "city") + ", " +
			field(raw, "State", "state") + " - " +
			field(raw, "PinCode", "pincode")
	}

	return Address{
		Name:        field(raw, "Name", "name"),
		Email:       field(raw, "Email", "email"),
		Phone:       field(raw, "Phone", "phone"),
		FullAddress: full,
	}
}

// field returns the first non-empty value among keys, then falls back to a
// case-insensitive match on the first key.
func field(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := stringify(raw[k]); v != "" {
			return v
		}
	}
	for k, v := range raw {
		if strings.EqualFold(k, keys[0]) {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
