package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineerRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    EngineerRef
		primary uint64
	}{
		{name: "number", input: `7`, want: EngineerRef{7}, primary: 7},
		{name: "numeric string", input: `"12"`, want: EngineerRef{12}, primary: 12},
		{name: "list keeps order", input: `[3, "4", 5]`, want: EngineerRef{3, 4, 5}, primary: 3},
		{name: "null", input: `null`, want: nil, primary: 0},
		{name: "empty string", input: `""`, want: nil, primary: 0},
		{name: "empty list", input: `[]`, want: EngineerRef{}, primary: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				EngineerID EngineerRef `json:"engineerId"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"engineerId":`+tt.input+`}`), &payload))
			assert.Equal(t, tt.want, payload.EngineerID)
			assert.Equal(t, tt.primary, payload.EngineerID.Primary())
		})
	}
}

func TestEngineerRef_UnmarshalJSON_Invalid(t *testing.T) {
	var payload struct {
		EngineerID EngineerRef `json:"engineerId"`
	}
	err := json.Unmarshal([]byte(`{"engineerId":"abc"}`), &payload)
	assert.ErrorIs(t, err, ErrInvalidIDRef)

	err = json.Unmarshal([]byte(`{"engineerId":[1,{"id":2}]}`), &payload)
	assert.ErrorIs(t, err, ErrInvalidIDRef)
}

func TestProjectRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ProjectRef
		wantErr bool
	}{
		{name: "number", input: `5`, want: 5},
		{name: "numeric string", input: `" 5 "`, want: 5},
		{name: "null", input: `null`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "word", input: `"five"`, wantErr: true},
		{name: "list", input: `[5]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				ProjectID ProjectRef `json:"projectId"`
			}
			err := json.Unmarshal([]byte(`{"projectId":`+tt.input+`}`), &payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidIDRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.ProjectID)
		})
	}
}

func TestCapacityForEmployment(t *testing.T) {
	assert.Equal(t, 100, CapacityForEmployment(EmploymentFullTime))
	assert.Equal(t, 50, CapacityForEmployment(EmploymentPartTime))
	assert.Equal(t, 0, CapacityForEmployment(EmploymentContract))
	assert.Equal(t, 0, CapacityForEmployment(""))
}

func TestUser_AvailableCapacity(t *testing.T) {
	assert.Equal(t, 40, User{MaxCapacity: 100, CurrentCapacity: 60}.AvailableCapacity())
	assert.Equal(t, 0, User{MaxCapacity: 50, CurrentCapacity: 80}.AvailableCapacity())
}
