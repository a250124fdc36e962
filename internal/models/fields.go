package models

import (
	"encoding/json"
	"strconv"
)

// Fields is an add payload keyed by JSON field name. Payload values of any
// JSON type are accepted and kept in their string form.
type Fields map[string]string

// FieldsFromMap converts decoded JSON values to Fields. Numbers and booleans
// keep their JSON text, null becomes empty, and objects or arrays are stored
// as compact JSON.
func FieldsFromMap(m map[string]interface{}) Fields {
	f := make(Fields, len(m))
	for k, v := range m {
		f[k] = stringify(v)
	}
	return f
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Account builds an account from the payload. The id is assigned on insert.
func (f Fields) Account() Account {
	return Account{
		Username: f["username"],
		Password: f["password"],
		Role:     f["role"],
	}
}

// Profile builds a profile from the payload.
func (f Fields) Profile() Profile {
	return Profile{
		Username:    f["username"],
		Name:        f["name"],
		Description: f["description"],
		Website:     f["website"],
		Location:    f["location"],
		Image:       f["image"],
		Role:        f["role"],
	}
}

// Product builds a product from the payload. image is not accepted on
// insert.
func (f Fields) Product() Product {
	return Product{
		SerialNumber: f["serialNumber"],
		Name:         f["name"],
		Brand:        f["brand"],
	}
}
