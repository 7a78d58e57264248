package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffTableName(t *testing.T) {
	staff := Staff{}
	assert.Equal(t, "staff", staff.TableName(), "Table name should be 'staff'")
}

func TestStaffPasswordNotSerialized(t *testing.T) {
	staff := Staff{ID: 1, Username: "admin", Password: "admin123"}

	body, err := json.Marshal(staff)
	assert.NoError(t, err)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "admin", response["username"])
	assert.NotContains(t, response, "password", "Password must never appear in JSON")
}
