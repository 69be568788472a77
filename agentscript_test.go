package agentscript_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nga-tools/agentscript"
	"github.com/nga-tools/agentscript/report"
	"github.com/nga-tools/agentscript/testutil"
)

// End-to-end: JSON export in, script text and report out, through the
// facade only.
func TestFacadeEndToEnd(t *testing.T) {
	def, err := agentscript.Load([]byte(testutil.BundleJSON), agentscript.FormatJSON, nil)
	require.NoError(t, err)

	result, err := agentscript.Convert(def, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TopicCount)
	assert.Equal(t, 1, result.ActionCount)
	assert.True(t, result.LegacyPlaceholders)
	assert.NotEmpty(t, result.AlertMessage)
	assert.NotEmpty(t, result.StatusSuffix)

	text := result.Text
	assert.Contains(t, text, "topic invoice_management:")
	assert.Contains(t, text, "start_agent topic_selector:")
	assert.Contains(t, text, "{!@variables.CustomerName}")
	assert.Contains(t, text, "flow://3A7x00000004CqWEAU")
	assert.True(t, strings.HasSuffix(text, "\n"))

	doc := agentscript.BuildReport(def, text, report.Metadata{
		InputFormat:        "json",
		TopicCount:         result.TopicCount,
		ActionCount:        result.ActionCount,
		LegacyPlaceholders: result.LegacyPlaceholders,
		AlertMessage:       result.AlertMessage,
		StatusSuffix:       result.StatusSuffix,
	})
	require.NotNil(t, doc)
	assert.Equal(t, "AcmeBot", doc.Agent.Name)
	require.NotEmpty(t, doc.Topics)
	assert.Equal(t, "invoice_management", doc.Topics[0].Name)
	assert.Contains(t, doc.Placeholders.Names, "CustomerName")

	notes := strings.Join(doc.Notes, "\n")
	assert.Contains(t, notes, "MANUAL ACTION REQUIRED")
	assert.Contains(t, notes, "`3A7x00000004CqWEAU`")
}

func TestFacadeDetectAndDefaults(t *testing.T) {
	assert.True(t, agentscript.DetectLegacyPlaceholders("greet {$UserName}", nil))
	assert.False(t, agentscript.DetectLegacyPlaceholders("greet {!@variables.UserName}", nil))

	assert.Equal(t, "Variables within instructions will be converted to @variables format",
		agentscript.AlertMessage(nil))
	assert.Equal(t, "(variables converted to @variables format)",
		agentscript.StatusSuffix(nil))
}
