package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_JSONShape(t *testing.T) {
	a := Account{
		ID:          42,
		Name:        "Ada Lovelace",
		Email:       "ada@example.com",
		Address:     "12 St James's Square, London",
		PhoneNumber: "555-0100",
		DateJoined:  NewDate(time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC)),
	}

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 42,
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"address": "12 St James's Square, London",
		"phone_number": "555-0100",
		"date_joined": "2024-03-09"
	}`, string(b))
}

func TestDate_Unmarshal(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2019-12-31"`), &d))
	assert.Equal(t, 2019, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 31, d.Day())

	assert.Error(t, json.Unmarshal([]byte(`"31/12/2019"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20191231`), &d))
}

func TestNewDate_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	d := NewDate(time.Date(2023, 1, 2, 23, 59, 59, 0, loc))
	assert.Equal(t, "2023-01-02", d.String())
	assert.Equal(t, 0, d.Hour())
}

func TestAccountFields_ApplyKeepsID(t *testing.T) {
	a := Account{ID: 3, Name: "old"}
	AccountFields{Name: "new", Email: "n@example.com"}.Apply(&a)

	assert.Equal(t, int64(3), a.ID)
	assert.Equal(t, "new", a.Name)
	assert.Equal(t, "n@example.com", a.Email)
}
