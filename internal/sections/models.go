package sections

import cmssections "github.com/goliatone/go-composer/sections"

type (
	Template = cmssections.Template
	Section  = cmssections.Section
	Snapshot = cmssections.Snapshot
)
