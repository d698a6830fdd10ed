package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli"
	"github.com/verso/go-dotmatrix/dotmatrix"
	"github.com/verso/go-dotmatrix/dotmatrix/cartridge"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.AdaptiveColor{Light: "#6366F1", Dark: "#818CF8"}).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).
			Width(18)

	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	badStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

func main() {
	app := cli.NewApp()
	app.Name = "dotmatrix"
	app.Description = "A Game Boy (DMG) emulator core"
	app.Usage = "dotmatrix [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug mode: verbose logging, LY pinned so test ROMs progress",
		},
		cli.BoolFlag{
			Name:  "serial",
			Usage: "Echo serial port output to stdout",
		},
		cli.Uint64Flag{
			Name:  "steps",
			Usage: "Stop after this many CPU steps (0 = run until a fatal error)",
			Value: 0,
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	emu, err := dotmatrix.NewWithFile(romPath)
	if err != nil {
		return err
	}

	printHeader(emu.Cartridge())

	// ROMs may touch echo RAM or the unusable 0xFEA0-0xFEFF gap; run the bus
	// permissive so those accesses are logged instead of panicking
	emu.SetPermissive(true)
	emu.SetDebug(c.Bool("debug"))
	if c.Bool("serial") {
		emu.SetSerialSink(func(b byte) { fmt.Printf("%c", b) })
	}

	return emu.Run(c.Uint64("steps"))
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func validity(valid bool) string {
	if valid {
		return okStyle.Render("valid")
	}
	return badStyle.Render("INVALID")
}

func printHeader(cart *cartridge.Cartridge) {
	kind := "unknown"
	if k, err := cart.Kind(); err == nil {
		kind = k.String()
	} else {
		kind = badStyle.Render(err.Error())
	}

	licensee := "unknown"
	if l, err := cart.Licensee(); err == nil {
		licensee = l.String()
	} else {
		licensee = badStyle.Render(err.Error())
	}

	lines := []string{
		headerStyle.Render(cart.Title()),
		row("kind", kind),
		row("licensee", licensee),
		row("rom size", fmt.Sprintf("%d KiB (%d bytes loaded)", cart.RomSize(), cart.Size())),
		row("ram size code", fmt.Sprintf("0x%02X", cart.RAMSizeCode())),
		row("version", fmt.Sprintf("0x%02X", cart.MaskROMVersion())),
		row("color mode", cart.ColorMode().String()),
		row("super gameboy", fmt.Sprintf("%t", cart.IsSuperGameBoy())),
		row("sold overseas", fmt.Sprintf("%t", cart.IsSoldOverseas())),
		row("nintendo logo", validity(cart.IsLogoMatch())),
		row("header checksum", fmt.Sprintf("0x%02X %s", cart.HeaderChecksum(), validity(cart.IsHeaderChecksumValid()))),
		row("global checksum", fmt.Sprintf("0x%04X %s", cart.GlobalChecksum(), validity(cart.IsGlobalChecksumValid()))),
	}

	for _, line := range lines {
		fmt.Fprintln(os.Stderr, line)
	}
}
