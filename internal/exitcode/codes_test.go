package exitcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"caltc/internal/exitcode"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", exitcode.Success, 0},
		{"Error", exitcode.Error, 1},
		{"PermissionDenied", exitcode.PermissionDenied, 2},
		{"CalendarNotFound", exitcode.CalendarNotFound, 3},
		{"MappingNotFound", exitcode.MappingNotFound, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code)
		})
	}
}

func TestExitCodeNames(t *testing.T) {
	tests := []struct {
		code         int
		expectedName string
	}{
		{exitcode.Success, "Success"},
		{exitcode.Error, "Error"},
		{exitcode.PermissionDenied, "PermissionDenied"},
		{exitcode.CalendarNotFound, "CalendarNotFound"},
		{exitcode.MappingNotFound, "MappingNotFound"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedName, func(t *testing.T) {
			assert.Equal(t, tt.expectedName, exitcode.Name(tt.code))
		})
	}
}

func TestExitCodeNameUnknown(t *testing.T) {
	assert.Equal(t, "unknown", exitcode.Name(99))
	assert.Equal(t, "unknown", exitcode.Name(-1))
	assert.Equal(t, "unknown", exitcode.Name(5))
}
