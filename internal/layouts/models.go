package layouts

import cmslayouts "github.com/goliatone/go-composer/layouts"

type (
	Layout        = cmslayouts.Layout
	StoredSection = cmslayouts.StoredSection
)
