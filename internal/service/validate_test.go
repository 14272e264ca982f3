package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_UsesJSONNames(t *testing.T) {
	err := Validate(PackageInput{Name: "Starter", Slug: "starter--plan", Currency: "usd", Features: []string{"ok", ""}})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"slug":        "slug",
		"currency":    "uppercase",
		"features[1]": "required",
	}, ve.Fields)
	assert.Contains(t, ve.Error(), "currency: uppercase")
}

func TestSlugValidation(t *testing.T) {
	for slug, ok := range map[string]bool{
		"web-design": true,
		"a1":         true,
		"Web":        false,
		"-web":       false,
		"web-":       false,
		"web design": false,
	} {
		err := Validate(ServiceInput{Title: "t", Slug: slug})
		assert.Equal(t, ok, err == nil, slug)
	}
}

func TestListParams_Page(t *testing.T) {
	assert.Equal(t, 20, ListParams{}.page().Limit)
	assert.Equal(t, 100, ListParams{Limit: 1000}.page().Limit)
	assert.Equal(t, 0, ListParams{Offset: -5}.page().Offset)
}
