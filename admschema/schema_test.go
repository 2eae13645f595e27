package admschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amprs.dev/ari/admschema"
)

func TestDocument_TopLevel(t *testing.T) {
	t.Parallel()

	doc := admschema.Document()
	assert.Equal(t, "object", doc.Type)
	assert.Contains(t, doc.Required, "name")
	assert.Contains(t, doc.Properties, "name")
	assert.Contains(t, doc.Properties, "namespace")
	assert.Contains(t, doc.Properties, "uses")
}

func TestDocument_Sections(t *testing.T) {
	t.Parallel()

	doc := admschema.Document()
	for _, section := range []string{"const", "ctrl", "edd", "mac", "oper", "rptt", "tblt", "var"} {
		t.Run(section, func(t *testing.T) {
			t.Parallel()

			prop, ok := doc.Properties[section]
			require.True(t, ok, "missing section %q", section)
			assert.Equal(t, "array", prop.Type)
			require.NotNil(t, prop.Items)
			assert.Equal(t, "object", prop.Items.Type)
			assert.Contains(t, prop.Items.Required, "name")
		})
	}
}

func TestDocument_CtrlParmspec(t *testing.T) {
	t.Parallel()

	doc := admschema.Document()
	ctrl := doc.Properties["ctrl"].Items
	parmspec, ok := ctrl.Properties["parmspec"]
	require.True(t, ok)
	assert.Equal(t, "array", parmspec.Type)
	assert.Contains(t, parmspec.Items.Required, "name")
	assert.Contains(t, parmspec.Items.Required, "type")
}

func TestDocument_TbltColumns(t *testing.T) {
	t.Parallel()

	doc := admschema.Document()
	tblt := doc.Properties["tblt"].Items
	assert.Contains(t, tblt.Required, "columns")

	cols := tblt.Properties["columns"]
	assert.Equal(t, "array", cols.Type)
	assert.Contains(t, cols.Items.Required, "name")
	assert.Contains(t, cols.Items.Required, "type")
}

func TestDocument_OperRequiresResultType(t *testing.T) {
	t.Parallel()

	doc := admschema.Document()
	oper := doc.Properties["oper"].Items
	assert.Contains(t, oper.Required, "result-type")
	assert.Contains(t, oper.Properties, "in-type")
}
