// pkg/filterconfig/validate_test.go
package filterconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "minimal valid document",
			raw:  `{"filters":[{"groupId":7}]}`,
		},
		{
			name: "full entries",
			raw:  `{"filters":[{"groupId":7,"sort":1},{"groupId":8,"sort":2,"display":"checkbox"}]}`,
		},
		{
			name: "empty filter list",
			raw:  `{"filters":[]}`,
		},
		{
			name:    "missing filters key",
			raw:     `{}`,
			wantErr: true,
		},
		{
			name:    "filters not an array",
			raw:     `{"filters":"nope"}`,
			wantErr: true,
		},
		{
			name:    "groupId missing",
			raw:     `{"filters":[{"sort":1}]}`,
			wantErr: true,
		},
		{
			name:    "groupId zero",
			raw:     `{"filters":[{"groupId":0}]}`,
			wantErr: true,
		},
		{
			name:    "unknown display mode",
			raw:     `{"filters":[{"groupId":7,"display":"slider"}]}`,
			wantErr: true,
		},
		{
			name:    "unknown extra field",
			raw:     `{"filters":[{"groupId":7,"color":"red"}]}`,
			wantErr: true,
		},
		{
			name:    "not JSON at all",
			raw:     `filters: [7]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(`{"filters":[{"groupId":8,"sort":2,"display":"checkbox"}]}`))

	require.NoError(t, err)
	require.Len(t, doc.Filters, 1)
	assert.Equal(t, int64(8), doc.Filters[0].GroupID)
	assert.Equal(t, 2, doc.Filters[0].Sort)
	assert.Equal(t, DisplayCheckbox, doc.Filters[0].Display)
}

func TestDecode_InvalidDocument(t *testing.T) {
	_, err := Decode([]byte(`{"filters":[{"groupId":-1}]}`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"filters":[{"groupId":7}]}`), 0o600))

	doc, err := Load(path)

	require.NoError(t, err)
	assert.Len(t, doc.Filters, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
