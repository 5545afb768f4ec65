package controllers

import (
	"testing"

	"github.com/coolairsites/pipeline-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTagDefinitionsJoinsKnownTypes(t *testing.T) {
	defs := map[string]models.TagDefinition{
		"answered-call": {
			TagType:     "answered-call",
			DisplayName: "Answered Call",
			Color:       "#22c55e",
			Description: "Owner picked up a call",
		},
	}
	tags := []models.LeadTag{
		{LeadID: "l1", TagType: "answered-call", CreatedBy: "system", IsAutoGenerated: true},
	}

	views := MergeTagDefinitions(tags, defs)
	require.Len(t, views, 1)
	assert.Equal(t, "answered-call", views[0].TagType)
	assert.Equal(t, "Answered Call", views[0].DisplayName)
	assert.Equal(t, "#22c55e", views[0].Color)
}

func TestMergeTagDefinitionsFallsBackForUnknownTypes(t *testing.T) {
	tags := []models.LeadTag{
		{LeadID: "l1", TagType: "left-note-on-door", CreatedBy: "jared"},
	}

	views := MergeTagDefinitions(tags, map[string]models.TagDefinition{})
	require.Len(t, views, 1)
	// Raw assignment survives, display fields stay empty
	assert.Equal(t, "left-note-on-door", views[0].TagType)
	assert.Equal(t, "jared", views[0].CreatedBy)
	assert.Empty(t, views[0].DisplayName)
	assert.Empty(t, views[0].Color)
}

func TestMergeTagDefinitionsKeepsDuplicates(t *testing.T) {
	defs := map[string]models.TagDefinition{
		"answered-call": {TagType: "answered-call", DisplayName: "Answered Call"},
	}
	tags := []models.LeadTag{
		{LeadID: "l1", TagType: "answered-call", CreatedBy: "system", IsAutoGenerated: true},
		{LeadID: "l1", TagType: "answered-call", CreatedBy: "system", IsAutoGenerated: true},
	}

	// Two answered-call events stay two entries
	views := MergeTagDefinitions(tags, defs)
	require.Len(t, views, 2)
	assert.Equal(t, views[0].TagType, views[1].TagType)
}

func TestMergeTagDefinitionsEmptyInput(t *testing.T) {
	views := MergeTagDefinitions(nil, nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}
