package tests

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
)

// ROMs are looked up next to this file, under roms/. Suites whose
// ROMs are missing are skipped.
var (
	_, b, _, _ = runtime.Caller(0)
	basePath   = filepath.Dir(b)
)

// ROMTest is a single test ROM with its own pass criteria.
type ROMTest interface {
	Name() string
	Run(t *testing.T)
}

// romsIn returns the .gb files found in dir, relative to roms/,
// skipping t when the directory does not exist.
func romsIn(t *testing.T, dir string) []string {
	t.Helper()
	files, err := os.ReadDir(filepath.Join(basePath, "roms", dir))
	if err != nil {
		t.Skipf("test roms not available: %v", err)
	}

	var roms []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".gb" {
			roms = append(roms, filepath.Join(dir, file.Name()))
		}
	}
	return roms
}

// loadROM loads a test ROM into a new GameBoy.
func loadROM(t *testing.T, path string, opts ...gameboy.Opt) *gameboy.GameBoy {
	t.Helper()
	rom, err := os.ReadFile(filepath.Join(basePath, "roms", path))
	if err != nil {
		t.Skipf("test rom not available: %v", err)
	}

	// the test suites ship as 32 KiB MBC1 images, which never
	// switch banks
	if len(rom) == 0x8000 && rom[0x147] == 0x01 {
		rom[0x147] = 0x00
	}
	cart, err := cartridge.New(rom)
	if err != nil {
		t.Fatal(err)
	}

	gb, err := gameboy.New(append(opts, gameboy.WithCartridge(cart))...)
	if err != nil {
		t.Fatal(err)
	}
	return gb
}

// testROMs runs each test as a parallel subtest.
func testROMs(t *testing.T, tests ...ROMTest) {
	for _, test := range tests {
		test := test
		t.Run(test.Name(), func(t *testing.T) {
			t.Parallel()
			test.Run(t)
		})
	}
}
