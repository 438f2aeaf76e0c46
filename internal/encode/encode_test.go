package encode

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/plugforge/internal/composer"
)

func sampleGraph() *composer.BuildGraph {
	return &composer.BuildGraph{
		Project:     composer.ProjectInfo{Name: "ADAA", Version: "1.0.0", Company: "chowdsp"},
		ModuleOrder: []string{"juce", "chowdsp_utils"},
		Modules: []composer.ModuleSpec{
			{Name: "juce", SourceRoot: "modules/JUCE"},
			{Name: "chowdsp_utils", SourceRoot: "modules/chowdsp_utils", DependsOn: []string{"juce"}, Defines: []string{"CHOWDSP_USE_XSIMD=1"}},
		},
		Jobs: []composer.Job{
			{Target: "ADAAPlugin", Format: "VST3", Kind: "plugin-bundle", Artifact: "ADAA.vst3",
				ManufacturerCode: "Chow", ProductCode: "Adaa", ProductName: "ADAA",
				Modules: []string{"juce", "chowdsp_utils"}},
		},
	}
}

func TestGraphJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Graph(sampleGraph(), FormatJSON, &buf))

	var decoded composer.BuildGraph
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleGraph(), decoded)
}

func TestGraphYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Graph(sampleGraph(), FormatYAML, &buf))

	var decoded composer.BuildGraph
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleGraph(), decoded)
}

func TestGraphOutputIsStable(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		var first, second bytes.Buffer
		require.NoError(t, Graph(sampleGraph(), format, &first))
		require.NoError(t, Graph(sampleGraph(), format, &second))
		assert.Equal(t, first.String(), second.String(), "format %s", format)
	}
}

func TestGraphUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Graph(sampleGraph(), "toml", &buf)
	assert.ErrorContains(t, err, "unknown output format")
}
