package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title     string `validate:"required,max=10"`
	Level     string `validate:"required,path_level"`
	Thumbnail string `validate:"omitempty,http_url"`
}

func TestValidateStructReportsFirstViolation(t *testing.T) {
	err := ValidateStruct(sampleRequest{Level: "beginner"})
	require.Error(t, err)
	assert.Equal(t, "field 'title' is required", err.Error())

	err = ValidateStruct(sampleRequest{Title: "ok", Level: "expert"})
	require.Error(t, err)
	assert.Equal(t, "field 'level' must be one of: beginner, intermediate, advanced", err.Error())

	err = ValidateStruct(sampleRequest{Title: "ok", Level: "advanced", Thumbnail: "ftp://x"})
	require.Error(t, err)
	assert.Equal(t, "field 'thumbnail' must be a valid http(s) URL", err.Error())

	assert.NoError(t, ValidateStruct(sampleRequest{Title: "ok", Level: "advanced", Thumbnail: "https://x"}))
}

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID("A987FBC9-4BED-3078-CF07-9141BA07C9F3")
	require.NoError(t, err)
	// 统一成小写规范形式
	assert.Equal(t, "a987fbc9-4bed-3078-cf07-9141ba07c9f3", id)

	_, err = ParseUUID("not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid UUID")
}
