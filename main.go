package main

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins"

	"github.com/os-pipeline/outsystems-pipeline/cli"
)

func main() {
	plugins.PluginMain(cli.GetApp())
}
