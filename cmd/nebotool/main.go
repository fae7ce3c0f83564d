package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/akeil/nebotool"
)

const (
	checkmark = "✓"
	crossmark = "✗"
	ellipsis  = "…"
)

func main() {
	nebotool.SetLogLevel("warning")

	app := kingpin.New("nebotool", "Convert handwritten note exports to vector documents")
	app.HelpFlag.Short('h')

	var (
		configPath = app.Flag("config", "Settings file").Default(defaultConfigPath).String()
		logLevel   = app.Flag("log-level", "One of debug, info, warning, error").String()
	)

	ls := app.Command("ls", "List collections and pages")
	var (
		lsRoot   = ls.Arg("root", "Export directory").Required().String()
		lsMatch  = ls.Arg("match", "Page or collection name must match this").String()
		lsFormat = ls.Flag("format", "Output format").Short('f').Default("tree").Enum("tree", "list")
	)

	convert := app.Command("convert", "Convert pages to PDF, PNG or ink archives")
	var (
		cvRoot  = convert.Arg("root", "Export directory").Required().String()
		cvMatch = convert.Arg("match", "Page or collection name must match this").String()
		outDir  = convert.Flag("output", "Output directory").Short('o').String()
		format  = convert.Flag("format", "Output format, one of pdf, png, archive").Short('f').String()
		jobs    = convert.Flag("jobs", "Number of pages converted in parallel").Short('j').Int()
		perColl = convert.Flag("collection-pdf", "Write one PDF per collection").Bool()
		scale   = convert.Flag("scale", "Scale factor for coordinates and pen widths").Float64()
		alpha   = convert.Flag("alpha", "Alpha handling, one of source, opaque, preserve").String()
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	s, err := loadSettings(*configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	s.override(settings{
		LogLevel: *logLevel,
		Output:   *outDir,
		Format:   *format,
		Jobs:     *jobs,
		Scale:    *scale,
		Alpha:    *alpha,
	})
	nebotool.SetLogLevel(s.LogLevel)

	switch command {
	case ls.FullCommand():
		err = doLs(*lsRoot, *lsFormat, *lsMatch)
	case convert.FullCommand():
		err = doConvert(s, *cvRoot, *cvMatch, *perColl)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
