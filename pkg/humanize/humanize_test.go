package humanize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/httperr/pkg/humanize"
)

func TestPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"email":           "Email",
		"firstName":       "First name",
		"first_name":      "First name",
		"first-name":      "First name",
		"__first__name":   "First name",
		"billingAddress2": "Billing address2",
		"":                "",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, humanize.Path(in))
		})
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world", humanize.Capitalize("hello WORLD"))
	assert.Equal(t, "Éclair", humanize.Capitalize("éclair"))
	assert.Equal(t, "", humanize.Capitalize(""))
}

func TestSentence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "First name is required", humanize.Sentence("firstName is required", "firstName"))
	assert.Equal(t, "Must be a valid address", humanize.Sentence("must be a valid address", ""))
}
