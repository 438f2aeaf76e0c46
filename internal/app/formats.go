package app

import (
	"github.com/vk/plugforge/formats/au"
	"github.com/vk/plugforge/formats/lv2"
	"github.com/vk/plugforge/formats/standalone"
	"github.com/vk/plugforge/formats/vst3"
	"github.com/vk/plugforge/internal/registry"
)

// coreFormats is the definitive list of all output formats compiled into
// the plugforge binary.
var coreFormats = []registry.Module{
	&au.Module{},
	&vst3.Module{},
	&standalone.Module{},
	&lv2.Module{},
}
