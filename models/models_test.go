package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ValidType(t *testing.T) {
	assert.True(t, ValidType(TypeFolder))
	assert.True(t, ValidType(TypeFile))
	assert.True(t, ValidType(TypeImage))
	assert.False(t, ValidType(""))
	assert.False(t, ValidType("pdf"))
	assert.False(t, ValidType("Folder"))
}

func Test_Public(t *testing.T) {
	f := File{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Name:      "pic.png",
		Type:      TypeImage,
		IsPublic:  true,
		ParentId:  uuid.Nil,
		LocalPath: "/tmp/files_manager/deadbeef",
	}

	p := f.Public()
	assert.Equal(t, f.Id.String(), p.Id)
	assert.Equal(t, f.UserId.String(), p.UserId)
	assert.Equal(t, "0", p.ParentId) // root sentinel

	parent := uuid.New()
	f.ParentId = parent
	assert.Equal(t, parent.String(), f.Public().ParentId)

	// the projection never carries the storage location
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	_, hasLocalPath := decoded["localPath"]
	assert.False(t, hasLocalPath)
}
