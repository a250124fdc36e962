package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsFromMap(t *testing.T) {
	f := FieldsFromMap(map[string]interface{}{
		"username": "ana",
		"password": json.Number("1234"),
		"role":     nil,
		"website":  3.5,
		"location": true,
		"name":     []interface{}{"a", 1.0},
	})

	assert.Equal(t, Fields{
		"username": "ana",
		"password": "1234",
		"role":     "",
		"website":  "3.5",
		"location": "true",
		"name":     `["a",1]`,
	}, f)
}

func TestFields_Records(t *testing.T) {
	f := Fields{
		"id":           "99",
		"username":     "ana",
		"password":     "pw",
		"role":         "retailer",
		"serialNumber": "5",
		"name":         "Bag",
		"image":        "x.png",
	}

	assert.Equal(t, Account{Username: "ana", Password: "pw", Role: "retailer"}, f.Account())
	assert.Equal(t, Profile{Username: "ana", Name: "Bag", Image: "x.png", Role: "retailer"}, f.Profile())
	assert.Equal(t, Product{SerialNumber: "5", Name: "Bag"}, f.Product())
}
