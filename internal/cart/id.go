package cart

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ProductID is always handled as a string key, no matter how a client sends
// it. The storefront historically sent numeric IDs from some call sites and
// string IDs from others; Redis and ScyllaDB lookups need one canonical form.
type ProductID string

func (p ProductID) String() string { return string(p) }

// UnmarshalJSON accepts both `"42"` and `42` (including floats and
// MAX_SAFE_INTEGER-scale values, kept digit-exact via json.Number).
func (p *ProductID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %w", err)
	}
	*p = ProductID(n.String())
	return nil
}

// NormalizeID coerces any identifier value to its string form. Total: every
// input produces a usable key.
func NormalizeID(v interface{}) ProductID {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return ProductID(id)
	case ProductID:
		return id
	case int:
		return ProductID(strconv.Itoa(id))
	case int64:
		return ProductID(strconv.FormatInt(id, 10))
	case float64:
		return ProductID(strconv.FormatFloat(id, 'f', -1, 64))
	case json.Number:
		return ProductID(id.String())
	default:
		return ProductID(fmt.Sprintf("%v", id))
	}
}
