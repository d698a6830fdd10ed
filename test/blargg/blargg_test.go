package blargg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verso/go-dotmatrix/dotmatrix"
)

const (
	// steps are executed in chunks so the serial output can be polled
	chunkSteps = 1_000_000
	maxChunks  = 300
)

type blarggTestCase struct {
	Name    string
	ROMPath string
}

func getBlarggTests() []blarggTestCase {
	baseDir := "../../test-roms"

	return []blarggTestCase{
		{Name: "cpu_instrs", ROMPath: filepath.Join(baseDir, "cpu_instrs.gb")},
		{Name: "01-special", ROMPath: filepath.Join(baseDir, "01-special.gb")},
		{Name: "02-interrupts", ROMPath: filepath.Join(baseDir, "02-interrupts.gb")},
		{Name: "03-op sp,hl", ROMPath: filepath.Join(baseDir, "03-op sp,hl.gb")},
		{Name: "04-op r,imm", ROMPath: filepath.Join(baseDir, "04-op r,imm.gb")},
		{Name: "05-op rp", ROMPath: filepath.Join(baseDir, "05-op rp.gb")},
		{Name: "06-ld r,r", ROMPath: filepath.Join(baseDir, "06-ld r,r.gb")},
		{Name: "07-jr,jp,call,ret,rst", ROMPath: filepath.Join(baseDir, "07-jr,jp,call,ret,rst.gb")},
		{Name: "08-misc instrs", ROMPath: filepath.Join(baseDir, "08-misc instrs.gb")},
		{Name: "09-op r,r", ROMPath: filepath.Join(baseDir, "09-op r,r.gb")},
		{Name: "10-bit ops", ROMPath: filepath.Join(baseDir, "10-bit ops.gb")},
		{Name: "11-op a,(hl)", ROMPath: filepath.Join(baseDir, "11-op a,(hl).gb")},
	}
}

// runBlarggTest drives a test ROM with the LY pin and serial capture enabled
// until it prints a verdict over the link port or the step budget runs out.
func runBlarggTest(t *testing.T, testCase blarggTestCase) {
	if _, err := os.Stat(testCase.ROMPath); os.IsNotExist(err) {
		t.Skipf("ROM file not found: %s", testCase.ROMPath)
		return
	}

	emu, err := dotmatrix.NewWithFile(testCase.ROMPath)
	if err != nil {
		t.Fatalf("Failed to create emulator: %v", err)
	}

	var output strings.Builder
	emu.SetDebug(true)
	emu.SetPermissive(true)
	emu.SetSerialSink(func(b byte) { output.WriteByte(b) })

	for i := 0; i < maxChunks; i++ {
		if err := emu.Run(chunkSteps); err != nil {
			t.Fatalf("Emulation failed: %v\nserial output so far:\n%s", err, output.String())
		}

		if strings.Contains(output.String(), "Passed") {
			t.Logf("serial output:\n%s", output.String())
			return
		}
		if strings.Contains(output.String(), "Failed") {
			t.Fatalf("Test ROM reported failure:\n%s", output.String())
		}
	}

	t.Fatalf("No verdict after %d steps; serial output:\n%s", chunkSteps*maxChunks, output.String())
}

func TestBlarggSuite(t *testing.T) {
	for _, testCase := range getBlarggTests() {
		t.Run(testCase.Name, func(t *testing.T) {
			runBlarggTest(t, testCase)
		})
	}
}
