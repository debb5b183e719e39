package templates

import cmssections "github.com/goliatone/go-composer/sections"

type Template = cmssections.Template
