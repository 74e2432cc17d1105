package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/routec/routec/routecgen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate typed-route forwarding code."`
	Check   CheckCmd   `cmd:"" help:"Validate route directives without generating files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type GenCmd struct {
	Package string `arg:"" optional:"" default:"." help:"Package pattern to scan for //routec:route directives."`
	Out     string `help:"Output directory (default: the scanned package's directory)." short:"o"`
	File    string `help:"Generated file name." default:"routes_gen.go"`
	Dir     string `help:"Working directory for package loading." short:"C"`
}

func (c *GenCmd) Run() error {
	g := routecgen.FromPackage(c.Package).Dir(c.Dir).FileName(c.File)
	if c.Out != "" {
		return g.ToDir(c.Out)
	}
	return g.ToPackage()
}

type CheckCmd struct {
	Package string `arg:"" optional:"" default:"." help:"Package pattern to scan for //routec:route directives."`
	Dir     string `help:"Working directory for package loading." short:"C"`
}

func (c *CheckCmd) Run() error {
	return routecgen.FromPackage(c.Package).Dir(c.Dir).Check()
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("routec"),
		kong.Description("Route directive compiler: generates typed-route constructors from //routec:route comments."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
