//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypographyStyle_Validate(t *testing.T) {
	valid := DefaultTypography()
	assert.NoError(t, valid.Validate())

	multiWordFont := DefaultTypography()
	multiWordFont.BodyFont = "Times New Roman"
	assert.NoError(t, multiWordFont.Validate())

	tooSmall := DefaultTypography()
	tooSmall.HeadlineSize = 12
	assert.Error(t, tooSmall.Validate())

	tooLarge := DefaultTypography()
	tooLarge.BodySize = 40
	assert.Error(t, tooLarge.Validate())

	badColor := DefaultTypography()
	badColor.BodyColor = "dark grey"
	assert.Error(t, badColor.Validate())

	unknownFont := DefaultTypography()
	unknownFont.HeadlineFont = "Comic Sans"
	assert.Error(t, unknownFont.Validate())
}
