package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBrandConfig(t *testing.T) {
	color := "#000000"
	merged := MergeBrandConfig(nil, BrandConfigPatch{BrandColor: &color, Hashtags: []string{"#x"}})

	defaults := DefaultBrandConfig()
	assert.Equal(t, "#000000", merged.BrandColor)
	assert.Equal(t, defaults.AccentColor, merged.AccentColor)
	assert.Equal(t, []string{"#x"}, merged.Hashtags)
	assert.Equal(t, defaults.Keywords, merged.Keywords)

	tagline := "new"
	again := MergeBrandConfig(&merged, BrandConfigPatch{Tagline: &tagline})
	assert.Equal(t, "#000000", again.BrandColor)
	assert.Equal(t, "new", again.Tagline)
}

func TestBrandConfig_CloneDoesNotShareSlices(t *testing.T) {
	cfg := DefaultBrandConfig()
	cp := cfg.Clone()
	cp.Hashtags[0] = "#changed"
	assert.NotEqual(t, cfg.Hashtags[0], cp.Hashtags[0])
}

func TestRequireBrandConfig(t *testing.T) {
	assert.ErrorIs(t, RequireBrandConfig(nil), ErrConfigMissing)
	cfg := DefaultBrandConfig()
	assert.NoError(t, RequireBrandConfig(&cfg))
	assert.Contains(t, ErrConfigMissing.Error(), "configuration missing")
}

func TestStageError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("run: %w", &StageError{Stage: StateRendering, Err: cause})

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StateRendering, stageErr.Stage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "stage rendering failed: boom", stageErr.Error())
}

func TestRunRecord_Clone(t *testing.T) {
	rec := &RunRecord{ID: "r", Topic: &TopicIdea{Title: "t", Sources: []Source{{Title: "s", URL: "u"}}}}
	cp, err := rec.Clone()
	require.NoError(t, err)
	cp.Topic.Sources[0].URL = "changed"
	assert.Equal(t, "u", rec.Topic.Sources[0].URL)

	var nilRec *RunRecord
	out, err := nilRec.Clone()
	assert.NoError(t, err)
	assert.Nil(t, out)
}
