package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopTerms(t *testing.T) {
	text := "Python developer wanted. Python, Django and PostgreSQL. Django REST experience with Python is required."

	assert.Equal(t, []string{"python", "django", "developer"}, TopTerms(text, 3))
	assert.Empty(t, TopTerms("a an the of to", 5))
}
