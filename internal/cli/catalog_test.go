package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slicermeta/slicermeta/internal/catalog"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

func TestCatalogCmd_Text(t *testing.T) {
	isolate(t)

	stdout, _, err := executeCommand(t, "", "catalog")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Field catalog (default profile)")
	assert.Contains(t, stdout, ";FLAVOR:Marlin")
	assert.Contains(t, stdout, `"estimated printing time"`)
	assert.Contains(t, stdout, "TIME")
	assert.Contains(t, stdout, "(duration)")
	assert.Contains(t, stdout, "(length)")
	assert.Contains(t, stdout, "3 entries, no duplicate keys")
	assert.NotContains(t, stdout, "MAXSPEED")
}

func TestCatalogCmd_JSONExtended(t *testing.T) {
	isolate(t)

	stdout, _, err := executeCommand(t, "", "catalog", "--profile", "extended", "--json")
	require.NoError(t, err)

	var entries []catalogEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries), stdout)
	require.Len(t, entries, catalog.Extended().Len())

	assert.Equal(t, catalogEntry{Kind: "constant", Key: "FLAVOR", Value: "Marlin"}, entries[0])
	assert.Equal(t, catalogEntry{Kind: "field", Key: "TIME", SourceKey: "estimated printing time", Transform: "duration"}, entries[1])
	assert.Equal(t, catalogEntry{Kind: "field", Key: "MAXSPEED", SourceKey: "max_print_speed", Transform: "passthrough"}, entries[len(entries)-1])
}

func TestCatalogCmd_UnknownProfile(t *testing.T) {
	isolate(t)

	_, _, err := executeCommand(t, "", "catalog", "--profile", "cura")
	require.Error(t, err)
	assert.Equal(t, slicermeta.ExitConfigError, slicermeta.ExitCodeForError(err))
}

func TestCatalogCmd_RejectsArguments(t *testing.T) {
	isolate(t)

	_, _, err := executeCommand(t, "", "catalog", "extra")
	require.Error(t, err)
	assert.Equal(t, slicermeta.ExitUsageError, slicermeta.ExitCodeForError(err))
}

func TestCatalogEntries_InvalidCatalogIsRejected(t *testing.T) {
	cat := catalog.New(
		catalog.Constant("TIME", "0"),
		catalog.Field("estimated printing time", "TIME", nil),
	)

	err := cat.Check()
	require.Error(t, err)
	assert.Equal(t, slicermeta.ExitConfigError, slicermeta.ExitCodeForError(err))
	assert.Len(t, catalogEntries(cat), 2)
}
